package main

import (
	"log"

	"fyne.io/fyne/v2/theme"

	"github.com/itohio/goirrigate/pkg/irrigation"
	"github.com/itohio/goirrigate/pkg/link"
)

// handlePumpOverride flips the simulated relay behind the controller's back.
// The controller only reclaims it once moisture leaves the dead band.
func handlePumpOverride(state *appState) {
	mock, ok := state.device.(*link.Mock)
	if !ok || !mock.IsConnected() {
		return
	}

	next := irrigation.PumpOn
	if state.history.Stats().Last.Pump == irrigation.PumpOn {
		next = irrigation.PumpOff
	}
	mock.Override(next)
	log.Printf("monitor: pump override %s", next)
}

// updatePumpIndicator reflects the last reported pump state in the toolbar.
func updatePumpIndicator(state *appState, pump irrigation.PumpState) {
	state.pumpLabel.SetText("Pump: " + pump.String())
	if pump == irrigation.PumpOn {
		state.pumpIcon.SetResource(theme.MediaPlayIcon())
		state.pumpBtn.SetIcon(theme.MediaStopIcon())
	} else {
		state.pumpIcon.SetResource(theme.MediaStopIcon())
		state.pumpBtn.SetIcon(theme.MediaPlayIcon())
	}
}
