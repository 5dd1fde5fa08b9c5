package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to w
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	o.Print(MessageResult{Message: msg})
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case HealthResult:
		fmt.Fprintf(o.w, "Status: %s\n", v.Status)
	case MessageResult:
		fmt.Fprintln(o.w, v.Message)
	case PlayersResult:
		o.printPlayers(v)
	case StatsResult:
		o.printStats(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

// MessageResult response type
type MessageResult struct {
	Message string `json:"message"`
}

// Player response type (matches API)
type Player struct {
	PlayerID string `json:"PLAYER_ID"`
	EpicID   string `json:"EPIC_ID"`
}

// PlayersResult response type
type PlayersResult struct {
	Players []Player `json:"players"`
}

// StatsResult response type. Columns are whatever the stats table holds.
type StatsResult struct {
	Stats []map[string]any `json:"stats"`
}

func (o *Output) printPlayers(p PlayersResult) {
	if len(p.Players) == 0 {
		fmt.Fprintln(o.w, "No players")
		return
	}

	tw := tabwriter.NewWriter(o.w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PLAYER_ID\tEPIC_ID")
	for _, player := range p.Players {
		fmt.Fprintf(tw, "%s\t%s\n", player.PlayerID, player.EpicID)
	}
	_ = tw.Flush()
}

func (o *Output) printStats(s StatsResult) {
	if len(s.Stats) == 0 {
		fmt.Fprintln(o.w, "No rows")
		return
	}

	columns := statsColumns(s.Stats)

	tw := tabwriter.NewWriter(o.w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(columns, "\t"))
	for _, row := range s.Stats {
		cells := make([]string, len(columns))
		for i, col := range columns {
			if v, ok := row[col]; ok && v != nil {
				cells[i] = fmt.Sprint(v)
			}
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	_ = tw.Flush()
}

// statsColumns returns the union of column names across rows, sorted
func statsColumns(rows []map[string]any) []string {
	seen := map[string]struct{}{}
	var columns []string
	for _, row := range rows {
		for col := range row {
			if _, ok := seen[col]; !ok {
				seen[col] = struct{}{}
				columns = append(columns, col)
			}
		}
	}
	slices.Sort(columns)
	return columns
}
