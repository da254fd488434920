package http

import (
	"net/http"

	"github.com/SoMedNinja/padel-app-sub001/internal/availability"
	"github.com/SoMedNinja/padel-app-sub001/internal/club"
	"github.com/SoMedNinja/padel-app-sub001/internal/config"
	"github.com/SoMedNinja/padel-app-sub001/internal/metrics"
	"github.com/SoMedNinja/padel-app-sub001/internal/notifier"
	"github.com/SoMedNinja/padel-app-sub001/internal/processor"
	"github.com/SoMedNinja/padel-app-sub001/internal/pubsub"
	"github.com/SoMedNinja/padel-app-sub001/internal/ranking"
)

type Server struct {
	Store          club.ClubStore
	Polls          availability.Store
	Rankings       *ranking.Service
	Counters       metrics.MetricsStore
	MetricsHandler http.Handler
	Cfg            config.Config
	Notifier       notifier.Notifier
	Processor      *processor.Processor
	Router         *http.ServeMux
	pubsub         pubsub.PubSubClient
}
