package hidreport

// TelemetryData is the live snapshot fed to the telemetry consumer
// collaborator, one struct per decoded output report plus a running
// frame counter the UI can use to detect repeats.
type TelemetryData struct {
	FrameID uint32

	Powertrain struct {
		Gear          byte
		RPM           uint16
		RPMPercent    uint8
		ShiftLight1   uint8
		ShiftLight2   uint8
		RevLimiter    bool
		EngineStarted bool
		Speed         uint16
	}
	ECU struct {
		ABSEngaged   bool
		TCEngaged    bool
		DRSEngaged   bool
		PitLimiter   bool
		LowFuelAlert bool
		ABSLevel     uint8
		TCLevel      uint8
		TCCut        uint8
		BrakeBias    uint8
	}
	RaceControl struct {
		BlackFlag        bool
		BlueFlag         bool
		CheckeredFlag    bool
		GreenFlag        bool
		OrangeFlag       bool
		WhiteFlag        bool
		YellowFlag       bool
		RemainingLaps    uint16
		RemainingMinutes uint16
	}
	Gauges struct {
		RelativeTurboPressure uint8
		AbsoluteTurboPressure float32 // bars
		WaterTemperature      uint16
		OilPressure           float32 // bars
		OilTemperature        uint16
		RelativeRemainingFuel uint8
		AbsoluteRemainingFuel uint16
	}
}

// TelemetryConsumer receives the live snapshot after every successfully
// decoded telemetry output report.
type TelemetryConsumer interface {
	OnTelemetry(*TelemetryData)
}

type telemetryState struct {
	data     TelemetryData
	consumer TelemetryConsumer
}

func clampPercent(v uint8) uint8 {
	if v > 100 {
		return 100
	}
	return v
}

// wire layouts: one byte per bool/uint8 field, two bytes per uint16 or
// u16/100-scaled float, in struct declaration order. No bit-packing: the
// original firmware lays these out the same naive way.

type powertrainWire struct {
	Gear          uint8
	RPM           uint16
	RPMPercent    uint8
	ShiftLight1   uint8
	ShiftLight2   uint8
	RevLimiter    uint8
	EngineStarted uint8
	Speed         uint16
}

func (d *Dispatcher) decodePowertrain(payload []byte) error {
	var w powertrainWire
	if err := unpackStruct(payload, &w); err != nil {
		return err
	}
	p := &d.telemetry.data.Powertrain
	p.Gear = w.Gear
	p.RPM = w.RPM
	p.RPMPercent = clampPercent(w.RPMPercent)
	p.ShiftLight1 = w.ShiftLight1
	p.ShiftLight2 = w.ShiftLight2
	p.RevLimiter = w.RevLimiter != 0
	p.EngineStarted = w.EngineStarted != 0
	p.Speed = w.Speed
	d.telemetry.frameReceived()
	d.notifyTelemetry()
	return nil
}

type ecuWire struct {
	ABSEngaged   uint8
	TCEngaged    uint8
	DRSEngaged   uint8
	PitLimiter   uint8
	LowFuelAlert uint8
	ABSLevel     uint8
	TCLevel      uint8
	TCCut        uint8
	BrakeBias    uint8
}

func (d *Dispatcher) decodeECU(payload []byte) error {
	var w ecuWire
	if err := unpackStruct(payload, &w); err != nil {
		return err
	}
	e := &d.telemetry.data.ECU
	e.ABSEngaged = w.ABSEngaged != 0
	e.TCEngaged = w.TCEngaged != 0
	e.DRSEngaged = w.DRSEngaged != 0
	e.PitLimiter = w.PitLimiter != 0
	e.LowFuelAlert = w.LowFuelAlert != 0
	e.ABSLevel = w.ABSLevel
	e.TCLevel = w.TCLevel
	e.TCCut = w.TCCut
	e.BrakeBias = clampPercent(w.BrakeBias)
	d.telemetry.frameReceived()
	d.notifyTelemetry()
	return nil
}

type raceControlWire struct {
	BlackFlag        uint8
	BlueFlag         uint8
	CheckeredFlag    uint8
	GreenFlag        uint8
	OrangeFlag       uint8
	WhiteFlag        uint8
	YellowFlag       uint8
	RemainingLaps    uint16
	RemainingMinutes uint16
}

func (d *Dispatcher) decodeRaceControl(payload []byte) error {
	var w raceControlWire
	if err := unpackStruct(payload, &w); err != nil {
		return err
	}
	r := &d.telemetry.data.RaceControl
	r.BlackFlag = w.BlackFlag != 0
	r.BlueFlag = w.BlueFlag != 0
	r.CheckeredFlag = w.CheckeredFlag != 0
	r.GreenFlag = w.GreenFlag != 0
	r.OrangeFlag = w.OrangeFlag != 0
	r.WhiteFlag = w.WhiteFlag != 0
	r.YellowFlag = w.YellowFlag != 0
	r.RemainingLaps = w.RemainingLaps
	r.RemainingMinutes = w.RemainingMinutes
	d.telemetry.frameReceived()
	d.notifyTelemetry()
	return nil
}

type gaugesWire struct {
	RelativeTurboPressure uint8
	AbsoluteTurboPressure uint16 // bars * 100
	WaterTemperature      uint16
	OilPressure           uint16 // bars * 100
	OilTemperature        uint16
	RelativeRemainingFuel uint8
	AbsoluteRemainingFuel uint16
}

func (d *Dispatcher) decodeGauges(payload []byte) error {
	var w gaugesWire
	if err := unpackStruct(payload, &w); err != nil {
		return err
	}
	g := &d.telemetry.data.Gauges
	g.RelativeTurboPressure = clampPercent(w.RelativeTurboPressure)
	g.AbsoluteTurboPressure = float32(w.AbsoluteTurboPressure) / 100
	g.WaterTemperature = w.WaterTemperature
	g.OilPressure = float32(w.OilPressure) / 100
	g.OilTemperature = w.OilTemperature
	g.RelativeRemainingFuel = clampPercent(w.RelativeRemainingFuel)
	g.AbsoluteRemainingFuel = w.AbsoluteRemainingFuel
	d.telemetry.frameReceived()
	d.notifyTelemetry()
	return nil
}

func (t *telemetryState) frameReceived() { t.data.FrameID++ }

func (d *Dispatcher) notifyTelemetry() {
	if d.telemetry.consumer != nil {
		d.telemetry.consumer.OnTelemetry(&d.telemetry.data)
	}
}
