package main

import (
	"flag"
	"fmt"
	"log"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/itohio/goirrigate/pkg/config"
	"github.com/itohio/goirrigate/pkg/history"
	"github.com/itohio/goirrigate/pkg/irrigation"
	"github.com/itohio/goirrigate/pkg/link"
	"github.com/itohio/goirrigate/pkg/trend"
)

// Throttle trend updates to ~30 FPS
const updateInterval = 33 * time.Millisecond

func main() {
	var (
		portFlag   = flag.String("p", "", "Serial port override (e.g., COM3 or /dev/ttyACM0)")
		configFlag = flag.String("config", "config.yaml", "Configuration file path")
		mockFlag   = flag.Bool("mock", false, "Use a simulated soil bed instead of the serial port")
	)
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *portFlag != "" {
		cfg.Serial.Port = *portFlag
	}

	ctrl, err := cfg.Irrigation()
	if err != nil {
		log.Fatalf("Invalid controller configuration: %v", err)
	}

	application := app.NewWithID("com.itohio.goirrigate")

	window := application.NewWindow("Irrigation Monitor")
	window.Resize(fyne.NewSize(1000, 600))
	window.CenterOnScreen()

	state := &appState{
		cfg:        cfg,
		configPath: *configFlag,
		ctrl:       ctrl,
		history:    history.New(cfg.Monitor.Window),
		window:     window,
		useMock:    *mockFlag,
	}

	toolbar := createToolbar(state)

	state.trendWidget = trend.New(ctrl, cfg.Monitor.Window)
	state.history.OnUpdate(state.onHistoryUpdate)

	window.SetContent(container.NewBorder(toolbar, nil, nil, nil, state.trendWidget))
	window.SetOnClosed(func() {
		closeRecordChain(state.chain)
	})
	window.ShowAndRun()
}

// recordChain tracks the device and the goroutine feeding the history.
type recordChain struct {
	device      link.Device
	historyDone chan struct{} // Closed when the history goroutine exits
}

// appState holds the application state.
type appState struct {
	cfg        *config.Config
	configPath string
	ctrl       irrigation.Config
	useMock    bool

	device      link.Device
	chain       *recordChain
	history     *history.History
	trendWidget *trend.TrendWidget

	window     fyne.Window
	connectBtn *widget.Button
	pumpBtn    *widget.Button
	pumpIcon   *widget.Icon
	pumpLabel  *widget.Label

	// Throttling for trend updates
	lastUpdateTime time.Time
	updateMu       sync.Mutex
}

// createToolbar creates the toolbar with Connect and Settings on the left
// and the pump indicator on the right.
func createToolbar(state *appState) fyne.CanvasObject {
	state.connectBtn = widget.NewButtonWithIcon("", theme.LoginIcon(), func() {
		handleConnect(state)
	})

	settingsBtn := widget.NewButtonWithIcon("", theme.SettingsIcon(), func() {
		showSettingsDialog(state)
	})

	// Only the simulated bed accepts a manual override; the firmware link is read-only.
	state.pumpBtn = widget.NewButtonWithIcon("Override", theme.MediaPlayIcon(), func() {
		handlePumpOverride(state)
	})
	state.pumpBtn.Disable()

	state.pumpIcon = widget.NewIcon(theme.MediaStopIcon())
	state.pumpLabel = widget.NewLabel("Pump: --")

	return container.NewBorder(
		nil,
		nil,
		container.NewHBox(state.connectBtn, settingsBtn),
		container.NewHBox(state.pumpBtn, state.pumpIcon, state.pumpLabel),
		nil,
	)
}

// onHistoryUpdate forwards history snapshots to the UI at a bounded rate.
func (state *appState) onHistoryUpdate(records []link.Record, runs []history.Run) {
	state.updateMu.Lock()
	now := time.Now()
	if now.Sub(state.lastUpdateTime) < updateInterval {
		state.updateMu.Unlock()
		return
	}
	state.lastUpdateTime = now
	state.updateMu.Unlock()

	fyne.Do(func() {
		state.trendWidget.UpdateData(records, runs)
		if len(records) > 0 {
			updatePumpIndicator(state, records[len(records)-1].Pump)
		}
	})
}

// closeRecordChain closes the device and waits for the history goroutine to drain.
func closeRecordChain(chain *recordChain) {
	if chain == nil {
		return
	}
	if chain.device != nil {
		chain.device.Close()
	}
	if chain.historyDone != nil {
		<-chain.historyDone
	}
}

// handleConnect handles the connect/disconnect button click.
func handleConnect(state *appState) {
	if state.device != nil && state.device.IsConnected() {
		closeRecordChain(state.chain)
		state.chain = nil
		state.device = nil
		state.pumpBtn.Disable()
		state.pumpLabel.SetText("Pump: --")
		if state.useMock {
			log.Println("monitor: disconnected from simulated bed")
		} else {
			log.Println("monitor: disconnected from serial port")
		}
		return
	}

	var device link.Device
	if state.useMock {
		device = link.NewMock(&state.cfg.Mock, state.ctrl)
		log.Println("monitor: using simulated bed")
	} else {
		device = link.New(state.cfg.Serial.Port, state.cfg.Serial.BaudRate, link.DefaultBufferSize)
	}

	if err := device.Connect(); err != nil {
		if state.useMock {
			dialog.ShowError(fmt.Errorf("failed to start simulated bed: %w", err), state.window)
		} else {
			dialog.ShowError(fmt.Errorf("failed to connect to %s: %w", state.cfg.Serial.Port, err), state.window)
		}
		return
	}
	state.device = device
	if !state.useMock {
		log.Printf("monitor: connected to serial port %s", state.cfg.Serial.Port)
	}

	if _, ok := device.(*link.Mock); ok {
		state.pumpBtn.Enable()
	}

	state.history.ResetShutdown()

	historyDone := make(chan struct{})
	go func() {
		defer close(historyDone)
		state.history.ProcessRecords(device.Records())
	}()

	state.chain = &recordChain{
		device:      device,
		historyDone: historyDone,
	}
}
