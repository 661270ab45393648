package main

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/itohio/goirrigate/pkg/link"
)

// showSettingsDialog displays the settings dialog.
func showSettingsDialog(state *appState) {
	tabs := container.NewAppTabs(
		createSerialTab(state),
		createControllerTab(state),
		createStatsTab(state),
	)

	content := container.NewBorder(nil, nil, nil, nil, tabs)
	d := dialog.NewCustom("Settings", "Close", content, state.window)
	d.Resize(fyne.NewSize(500, 400))
	d.Show()
}

// createSerialTab creates the Serial configuration tab.
func createSerialTab(state *appState) *container.TabItem {
	ports, err := link.Ports()
	portOptions := []string{}
	portMap := make(map[string]string) // Display name to port name

	if err == nil {
		for _, port := range ports {
			displayName := port.Name
			if port.Description != "" && port.Description != port.Name {
				displayName = fmt.Sprintf("%s (%s)", port.Name, port.Description)
			}
			portOptions = append(portOptions, displayName)
			portMap[displayName] = port.Name
		}
	}

	currentPort := state.cfg.Serial.Port
	currentDisplay := currentPort
	found := false
	for _, opt := range portOptions {
		if portMap[opt] == currentPort {
			currentDisplay = opt
			found = true
			break
		}
	}
	if !found && currentPort != "" {
		portOptions = append(portOptions, currentPort)
		portMap[currentPort] = currentPort
	}

	portSelect := widget.NewSelect(portOptions, nil)
	if currentDisplay != "" {
		portSelect.SetSelected(currentDisplay)
	}

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "Serial Port", Widget: portSelect},
			{Text: "Baud Rate", Widget: widget.NewLabel(fmt.Sprintf("%d", state.cfg.Serial.BaudRate))},
		},
		OnSubmit: func() {
			if portSelect.Selected == "" {
				return
			}
			selectedPort := portMap[portSelect.Selected]
			if selectedPort == "" {
				selectedPort = portSelect.Selected
			}

			portChanged := state.cfg.Serial.Port != selectedPort
			wasConnected := state.device != nil && state.device.IsConnected()

			state.cfg.Serial.Port = selectedPort
			if err := state.cfg.Save(state.configPath); err != nil {
				dialog.ShowError(fmt.Errorf("failed to save config: %w", err), state.window)
				return
			}

			// Reconnect on the new port
			if portChanged && wasConnected && !state.useMock {
				handleConnect(state)
				handleConnect(state)
			}
		},
	}

	return container.NewTabItem("Serial", form)
}

// createControllerTab shows the thresholds the firmware was built with.
// They live in the firmware, so the monitor only displays them.
func createControllerTab(state *appState) *container.TabItem {
	c := state.cfg.Controller
	form := widget.NewForm(
		widget.NewFormItem("Dry threshold", widget.NewLabel(fmt.Sprintf("%d%%", c.DryThreshold))),
		widget.NewFormItem("Wet threshold", widget.NewLabel(fmt.Sprintf("%d%%", c.WetThreshold))),
		widget.NewFormItem("Sensor max", widget.NewLabel(fmt.Sprintf("%d", c.SensorMax))),
		widget.NewFormItem("Cycle delay", widget.NewLabel(c.CycleDelay.String())),
		widget.NewFormItem("History window", widget.NewLabel(state.cfg.Monitor.Window.String())),
	)
	return container.NewTabItem("Controller", form)
}

// createStatsTab summarises the records currently held in the history window.
func createStatsTab(state *appState) *container.TabItem {
	s := state.history.Stats()
	runs := state.history.Runs()

	form := widget.NewForm(
		widget.NewFormItem("Records", widget.NewLabel(fmt.Sprintf("%d", s.Count))),
		widget.NewFormItem("Moisture range", widget.NewLabel(fmt.Sprintf("%d%% - %d%%", s.Min, s.Max))),
		widget.NewFormItem("Pump duty cycle", widget.NewLabel(fmt.Sprintf("%.1f%%", s.DutyCycle*100))),
		widget.NewFormItem("Pump switches", widget.NewLabel(fmt.Sprintf("%d", s.Switches))),
		widget.NewFormItem("Pump runs", widget.NewLabel(fmt.Sprintf("%d", len(runs)))),
	)
	return container.NewTabItem("Statistics", form)
}
