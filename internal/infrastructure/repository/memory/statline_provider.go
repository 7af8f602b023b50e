package memory

import (
	"context"
	"sync"

	"github.com/pondside/fantasy-hockey/internal/domain/gameday"
	"github.com/pondside/fantasy-hockey/internal/domain/statline"
)

// StatLineProvider is the in-process stand-in for the external stats feed,
// used in memory mode and in tests.
type StatLineProvider struct {
	mu           sync.RWMutex
	lines        map[string]statline.StatLine
	completeDays map[gameday.Date]bool
}

func NewStatLineProvider(lines []statline.StatLine, completeDays []gameday.Date) *StatLineProvider {
	p := &StatLineProvider{
		lines:        make(map[string]statline.StatLine, len(lines)),
		completeDays: make(map[gameday.Date]bool, len(completeDays)),
	}
	for _, line := range lines {
		p.lines[statLineKey(line.PlayerID, line.Date)] = line
	}
	for _, d := range completeDays {
		p.completeDays[d] = true
	}
	return p
}

func (p *StatLineProvider) GetDailyStatLine(_ context.Context, playerID string, date gameday.Date) (statline.StatLine, bool, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	line, ok := p.lines[statLineKey(playerID, date)]
	if !ok {
		return statline.StatLine{}, false, nil
	}

	return line, true, nil
}

func (p *StatLineProvider) AreGamesComplete(_ context.Context, date gameday.Date) (bool, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.completeDays[date], nil
}

// MarkGamesComplete flips the completion flag for a day, letting memory-mode
// deployments roll days over without an external feed.
func (p *StatLineProvider) MarkGamesComplete(date gameday.Date) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.completeDays[date] = true
}

func statLineKey(playerID string, date gameday.Date) string {
	return playerID + "::" + date.String()
}
