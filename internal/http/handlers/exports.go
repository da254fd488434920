package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/SoMedNinja/padel-app-sub001/internal/charts"
	"github.com/SoMedNinja/padel-app-sub001/internal/export"
	"github.com/SoMedNinja/padel-app-sub001/internal/ranking"
	"github.com/charmbracelet/log"
)

func LeaderboardExportHandler(rankings *ranking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		players, err := rankings.Leaderboard()
		if err != nil {
			writeError(w, "Failed to build leaderboard", err)
			return
		}
		data, err := export.LeaderboardWorkbook(players, rankings.Location())
		if err != nil {
			writeError(w, "Failed to export leaderboard", err)
			return
		}
		name := export.FileName("Padel leaderboard", time.Now().In(rankings.Location()))
		w.Header().Set("Content-Type", export.ContentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
		if _, err := w.Write(data); err != nil {
			log.Error("Failed to write export", "error", err)
		}
	}
}

func EloChartHandler(rankings *ranking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profile, err := rankings.Player(r.PathValue("id"))
		if err != nil {
			writeError(w, "Failed to get player", err)
			return
		}
		data, err := charts.EloHistory(profile.Stats, charts.DefaultPalette)
		if err != nil {
			writeError(w, "Failed to render chart", err)
			return
		}
		w.Header().Set("Content-Type", charts.ContentType)
		if _, err := w.Write(data); err != nil {
			log.Error("Failed to write chart", "error", err)
		}
	}
}
