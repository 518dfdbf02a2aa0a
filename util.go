// utility functions
package main

import (
	"sync"
	"time"

	"dscheirer.com/segscroll/sevenseg_backpack"
	"github.com/jonboulle/clockwork"
)

// sleep times for the worker loops
const (
	dDisplaySleep = 20 * time.Millisecond
	dButtonSleep  = 50 * time.Millisecond
)

type commChannels struct {
	quit    chan struct{}
	effects chan displayEffect
	closer  *sync.Once
}

// anyone may end the program, only the first one closes quit
func closeQuit(comms commChannels) {
	comms.closer.Do(func() {
		close(comms.quit)
	})
}

// what the display loop last did, readable from the http side
type statusSnapshot struct {
	Content    string  `json:"content"`
	Text       string  `json:"text"`
	Offset     int     `json:"offset"`
	Length     int     `json:"length"`
	Viewport   int     `json:"viewport"`
	Brightness float64 `json:"brightness"`
	Scroll     string  `json:"scroll"`
	Paused     bool    `json:"paused"`
}

type statusBoard struct {
	mu   sync.Mutex
	snap statusSnapshot
}

func (sb *statusBoard) set(s statusSnapshot) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.snap = s
}

func (sb *statusBoard) get() statusSnapshot {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	return sb.snap
}

type runtimeConfig struct {
	settings      configSettings
	clock         clockwork.Clock
	comms         commChannels
	display       *sevenseg_backpack.Sevenseg
	content       content
	buttons       buttons
	configService configService
	status        *statusBoard
	logger        *ThreadLogger
}

func initCommChannels() commChannels {
	quit := make(chan struct{})
	effectChannel := make(chan displayEffect, 4)

	return commChannels{
		quit:    quit,
		effects: effectChannel,
		closer:  &sync.Once{}}
}

func initRuntime(settings configSettings, display *sevenseg_backpack.Sevenseg, c content) runtimeConfig {
	return runtimeConfig{
		settings:      settings,
		clock:         clockwork.NewRealClock(),
		comms:         initCommChannels(),
		display:       display,
		content:       c,
		buttons:       newButtons(settings),
		configService: &httpConfigService{},
		status:        &statusBoard{},
		logger:        &ThreadLogger{name: "Main"},
	}
}

func scrollConfig(settings configSettings) sevenseg_backpack.ScrollConfig {
	mode := sevenseg_backpack.ScrollOff
	if settings.GetBool(sScroll) {
		mode = sevenseg_backpack.ScrollBounce
		if settings.GetBool(sContinuous) {
			mode = sevenseg_backpack.ScrollContinuous
		}
	}
	return sevenseg_backpack.ScrollConfig{
		Mode:  mode,
		Delay: settings.GetDuration(sScrollDelay),
		Speed: settings.GetDuration(sScrollSpeed),
		Dwell: settings.GetDuration(sScrollDwell),
	}
}
