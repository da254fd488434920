// Package export renders club data as spreadsheet workbooks.
package export

import (
	"fmt"
	"time"

	"github.com/SoMedNinja/padel-app-sub001/internal/elo"
	"github.com/gosimple/slug"
	"github.com/xuri/excelize/v2"
)

// Sheet names.
const (
	LeaderboardSheet = "Leaderboard"
	HistorySheet     = "History"
)

// ContentType is the MIME type of the workbooks.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var (
	leaderboardHeaders = []string{"Rank", "Player", "Elo", "Games", "Wins", "Losses", "Win %", "Elo change"}
	historyHeaders     = []string{"Date", "Player", "Match", "Result", "Delta", "Elo"}
)

// FileName builds the download name, e.g. "padel-leaderboard-2024-05-10.xlsx".
func FileName(title string, now time.Time) string {
	return fmt.Sprintf("%s-%s.xlsx", slug.Make(title), now.Format("2006-01-02"))
}

// LeaderboardWorkbook writes the players in the given order to a leaderboard sheet,
// and every rated match of every player to a history sheet.
func LeaderboardWorkbook(players []elo.PlayerStats, loc *time.Location) ([]byte, error) {
	if loc == nil {
		loc = time.UTC
	}
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", LeaderboardSheet); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := f.NewSheet(HistorySheet); err != nil {
		return nil, fmt.Errorf("failed to create history sheet: %w", err)
	}

	if err := writeRow(f, LeaderboardSheet, 1, toAny(leaderboardHeaders)); err != nil {
		return nil, err
	}
	for i, p := range players {
		row := []any{i + 1, p.Name, p.Elo, p.Games, p.Wins, p.Losses, fmt.Sprintf("%.1f%%", p.WinRate()*100), p.Elo - p.StartElo}
		if err := writeRow(f, LeaderboardSheet, i+2, row); err != nil {
			return nil, err
		}
	}

	if err := writeRow(f, HistorySheet, 1, toAny(historyHeaders)); err != nil {
		return nil, err
	}
	row := 2
	for _, p := range players {
		for _, h := range p.History {
			values := []any{h.Timestamp.In(loc).Format("2006-01-02 15:04"), p.Name, h.MatchID, h.Result, h.Delta, h.Elo}
			if err := writeRow(f, HistorySheet, row, values); err != nil {
				return nil, err
			}
			row++
		}
	}

	f.SetColWidth(LeaderboardSheet, "B", "B", 24)
	f.SetColWidth(LeaderboardSheet, "C", "H", 12)
	f.SetColWidth(HistorySheet, "A", "C", 20)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("failed to set %s!%s: %w", sheet, cell, err)
		}
	}
	return nil
}

func toAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
