// Command simwheelfw is a host-buildable wiring demo for the firmware
// core: it assembles every package in this module into one running device
// using simulated hardware, the way cmd/boardtest exercised the teacher's
// HAL against real Pico peripherals. Nothing here talks to real silicon;
// simGPIO/simADC/simI2C stand in for tinygo.org/x/drivers-shaped board
// support so the whole pipeline can be driven and inspected on a desktop.
package main

import (
	"context"
	"io"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"simwheel-go/bus"
	"simwheel-go/capset"
	"simwheel-go/collab"
	"simwheel-go/collab/battery"
	"simwheel-go/collab/power"
	"simwheel-go/collab/storage"
	"simwheel-go/collab/telemetryui"
	"simwheel-go/collab/transport"
	"simwheel-go/devctx"
	"simwheel-go/drivers/analogaxis"
	"simwheel-go/drivers/buttonmatrix"
	"simwheel-go/hidreport"
	"simwheel-go/hub"
	"simwheel-go/hwio"
	"simwheel-go/inputmap"
	"simwheel-go/sampler"
	"simwheel-go/settings"
	"simwheel-go/types"
)

// Firmware input numbers this demo books. A real board's wiring table would
// live in board-specific configuration instead of a const block.
const (
	inClutchLeft types.InputNumber = iota
	inClutchRight
	inShiftUp
	inShiftDown
)

func main() {
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dev := devctx.New(log)

	matrix, err := buttonmatrix.New(dev, "matrix0", buttonmatrix.Params{
		Rows: []hwio.GPIOPin{&simGPIO{}, &simGPIO{}},
		Cols: []hwio.GPIOPin{&simGPIO{}, &simGPIO{}},
		Cells: []buttonmatrix.Cell{
			{Row: 0, Col: 0, Input: inClutchLeft},
			{Row: 0, Col: 1, Input: inClutchRight},
			{Row: 1, Col: 0, Input: inShiftUp},
			{Row: 1, Col: 1, Input: inShiftDown},
		},
	})
	if err != nil {
		log.Error("configuring button matrix", "err", err)
		os.Exit(1)
	}

	leftAxis := analogaxis.New(&simADC{level: 40})
	rightAxis := analogaxis.New(&simADC{level: 40}, analogaxis.WithReversed(true))

	b := bus.NewBus(32)
	set := settings.New(b.NewConnection("settings"))

	im := inputmap.New()
	im.ResetOptimal(dev.BookedInputs(), nil)

	h := hub.New(hub.Config{
		Clutch: hub.ClutchBindings{
			HasDigital:  true,
			LeftButton:  inClutchLeft,
			RightButton: inClutchRight,
			BiteUp:      types.Unspecified,
			BiteDown:    types.Unspecified,
		},
		Map:           im,
		OnRecalibrate: func() { leftAxis.Recalibrate(); rightAxis.Recalibrate() },
	}, set)
	if err := h.Ready(dev); err != nil {
		log.Error("hub configuration invalid", "err", err)
		os.Exit(1)
	}

	samp := sampler.New(sampler.Options{
		Drivers:   []sampler.Driver{matrix},
		LeftAxis:  leftAxis,
		RightAxis: rightAxis,
		Log:       log,
		OnAxisCalibrated: func(left bool) {
			log.Info("axis autocalibrated", "left", left)
		},
	})

	caps := capset.NewBuilder().
		HasClutchButton().
		HasBattery().
		Force(types.CapTelemetryPowertrain).
		Build()

	link := transport.New(log.With("component", "transport"))
	transport.UARTDial = loopbackDial

	batt := battery.New(&simI2C{level: 8000}, 0x36, set)
	tel := telemetryui.New()
	tel.Register(fakeTelemetryUI{})
	pwr := power.New(log.With("component", "power"), func() { log.Warn("power: latch pulled, shutting down") })

	disp := hidreport.New(hidreport.Options{
		Hub:      h,
		Context:  dev,
		Settings: set,
		Caps: hidreport.Capabilities{
			MajorVersion: 1,
			MinorVersion: 0,
			Flags:        caps,
			MaxFPS:       30,
		},
		Transport: link,
		LeftAxis:  leftAxis,
		RightAxis: rightAxis,
		Battery:   batt,
		Telemetry: tel,
	})

	store := storage.New(storage.NewMemoryBackend(), set, h, disp)
	store.Start()

	// Settings-bus notifications that originate away from the host (a
	// physical bite-point adjustment, the fuel gauge's own poll loop, a
	// low-battery crossing) get pushed back out over the link and to power
	// control, rather than hidreport or hub importing collab/transport and
	// collab/power directly.
	set.OnBitePoint(func(uint8) { link.ReportChangeInConfig() })
	set.OnBatteryLevel(func(pct int16) { link.ReportBatteryLevel(uint8(pct)) })
	set.OnLowBattery(func() { pwr.Shutdown() })

	link.Begin("Sim Wheel", "Acme Pedals Ltd", 300, 0xF00D, 0xBEEF)

	var wg sync.WaitGroup
	runTasks := []func(context.Context){
		samp.Run,
		func(ctx context.Context) { link.Run(ctx, disp) },
		func(ctx context.Context) { batt.Run(ctx, 2*time.Second) },
		tel.Run,
	}
	for _, task := range runTasks {
		wg.Add(1)
		go func(task func(context.Context)) {
			defer wg.Done()
			task(ctx)
		}(task)
	}

	dev.OnShutdown(func() { pwr.Shutdown() })
	dev.Start()
	set.PublishStart()

	pumpInputReports(ctx, samp, h, link)

	dev.Shutdown()
	set.PublishShutdown()
	wg.Wait()
}

// pumpInputReports drains the sampler's decoupling queue, runs every event
// through the hub pipeline, and forwards the packed report to the link,
// mirroring the firmware core's component B->D->E dataflow (the hub applies
// the input map, component C, inside Process).
func pumpInputReports(ctx context.Context, samp *sampler.Sampler, h *hub.Hub, link *transport.Device) {
	events := samp.Events()
	tick := time.NewTicker(10 * time.Millisecond)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
			for {
				ev, ok := events.TryPop()
				if !ok {
					break
				}
				report := h.Process(ev)
				link.ReportInput(hidreport.PackInput(report))
			}
		}
	}
}

// loopbackDial stands in for tinygo-uartx in this host demo: it hands
// transport.Device an in-process pipe instead of a real serial port. No
// host is attached on the other end, so a background goroutine drains and
// discards whatever the device writes; otherwise every write would block
// forever waiting for a reader, the way an unplugged serial port never
// would.
func loopbackDial(ctx context.Context) (io.ReadWriteCloser, error) {
	drain, server := net.Pipe()
	go func() {
		buf := make([]byte, 512)
		for {
			if _, err := drain.Read(buf); err != nil {
				return
			}
		}
	}()
	go func() {
		<-ctx.Done()
		drain.Close()
		server.Close()
	}()
	return server, nil
}

var _ collab.Transport = (*transport.Device)(nil)
var _ collab.Power = (*power.Controller)(nil)
var _ collab.BatteryMonitor = (*battery.Monitor)(nil)
var _ collab.TelemetryUI = (*fakeTelemetryUI)(nil)

type fakeTelemetryUI struct{}

func (fakeTelemetryUI) MaxFPS() uint8                         { return 10 }
func (fakeTelemetryUI) Deliver(data *hidreport.TelemetryData) {}
