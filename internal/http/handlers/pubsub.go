package handlers

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"

	"github.com/SoMedNinja/padel-app-sub001/internal/processor"
	"github.com/SoMedNinja/padel-app-sub001/internal/pubsub"
	"github.com/charmbracelet/log"
)

// pushMessage is the envelope of a Pub/Sub push delivery.
type pushMessage struct {
	Subscription string `json:"subscription"`
	Message      struct {
		Data       string            `json:"data"`
		Attributes map[string]string `json:"attributes"`
		MessageID  string            `json:"messageId"`
	} `json:"message"`
}

// PushHandler unwraps a Pub/Sub push delivery for topic and hands the msgpack
// payload to the processor. A non-2xx response makes Pub/Sub redeliver.
func PushHandler(topic pubsub.EventType, proc *processor.Processor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			log.Error("Failed to read request body", "error", err)
			http.Error(w, "Failed to read request body", http.StatusInternalServerError)
			return
		}
		log.Debug("Received push message", "topic", topic, "body", string(bodyBytes))

		var msg pushMessage
		if err := json.Unmarshal(bodyBytes, &msg); err != nil {
			log.Error("Failed to unmarshal wrapper JSON", "error", err)
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		rawData, err := base64.StdEncoding.DecodeString(msg.Message.Data)
		if err != nil {
			log.Error("Failed to decode base64 data", "error", err)
			http.Error(w, "Invalid base64 data", http.StatusBadRequest)
			return
		}
		if err := proc.HandleEvent(r.Context(), topic, rawData); err != nil {
			log.Error("Failed to process push message", "error", err, "topic", topic, "message_id", msg.Message.MessageID)
			http.Error(w, "Failed to process message", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("OK"))
	}
}
