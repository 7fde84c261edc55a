// Package storage is the reference settings persistence collaborator: it
// subscribes to settings.Bus's LoadSetting/SaveSetting requests and
// serializes each UserSetting kind to and from a pluggable Backend. The
// storage medium itself (flash, a file, memory) is out of scope by an
// explicit Non-goal, so Backend is the seam a real board plugs a flash
// driver into; MemoryBackend is the reference implementation used here and
// in tests. Grounded on the teacher's services/config.ConfigService
// (embedded-config publish loop keyed by a function-variable lookup,
// generalized from one-shot publish to bidirectional load/save).
package storage

import (
	"encoding/json"
	"sync"

	"github.com/andreyvit/tinyjson"

	"simwheel-go/collab"
	"simwheel-go/hub"
	"simwheel-go/inputmap"
	"simwheel-go/settings"
	"simwheel-go/types"
)

var _ collab.Storage = (*MemoryBackend)(nil)

// Backend is where encoded setting blobs actually live. Its method names
// match collab.Storage exactly, so a Backend satisfies that interface
// structurally: the firmware core's view of "storage" is this seam, not
// Service, which just adapts it to settings.Bus and *hub.Hub.
type Backend interface {
	LoadSetting(kind types.SettingKind) ([]byte, bool)
	SaveSetting(kind types.SettingKind, data []byte)
}

// MemoryBackend is a process-local Backend: the reference choice when no
// flash driver is wired in, and what the package's own tests use.
type MemoryBackend struct {
	mu   sync.Mutex
	data map[types.SettingKind][]byte
}

// NewMemoryBackend returns an empty backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{data: make(map[types.SettingKind][]byte)}
}

func (b *MemoryBackend) LoadSetting(kind types.SettingKind) ([]byte, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	v, ok := b.data[kind]
	return v, ok
}

func (b *MemoryBackend) SaveSetting(kind types.SettingKind, data []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.data[kind] = append([]byte(nil), data...)
}

// HardwareID is the narrow surface storage needs from hidreport.Dispatcher
// to persist and restore a custom VID/PID pair, defined locally to avoid an
// import cycle (hidreport never imports collab/storage).
type HardwareID interface {
	CustomHardwareID() (vid, pid uint16)
	SetCustomHardwareID(vid, pid uint16)
}

// Service wires a Backend to settings.Bus, serializing against *hub.Hub's
// accessor surface and an optional HardwareID collaborator. Axis and
// battery calibration blobs are opaque: storage just round-trips whatever
// bytes the owning driver last handed it through SetAxisCalibration /
// SetBatteryCalibration.
type Service struct {
	backend Backend
	set     *settings.Bus
	hub     *hub.Hub
	hwid    HardwareID

	mu          sync.Mutex
	axisCalib   []byte
	batteryCalib []byte
}

// New builds a Service. hwid may be nil on a transport with no custom
// hardware ID support.
func New(backend Backend, set *settings.Bus, h *hub.Hub, hwid HardwareID) *Service {
	return &Service{backend: backend, set: set, hub: h, hwid: hwid}
}

// Start subscribes to every load/save request. Call once at startup, after
// the hub and input map have their configuration-time defaults applied.
func (s *Service) Start() {
	s.set.OnLoadSetting(s.load)
	s.set.OnSaveSetting(s.save)
}

// SetAxisCalibration lets the axis driver publish its calibrated range for
// persistence; storage has no notion of what the bytes mean.
func (s *Service) SetAxisCalibration(data []byte) {
	s.mu.Lock()
	s.axisCalib = append([]byte(nil), data...)
	s.mu.Unlock()
}

// SetBatteryCalibration mirrors SetAxisCalibration for the battery gauge.
func (s *Service) SetBatteryCalibration(data []byte) {
	s.mu.Lock()
	s.batteryCalib = append([]byte(nil), data...)
	s.mu.Unlock()
}

func (s *Service) load(kind types.SettingKind) {
	raw, ok := s.backend.LoadSetting(kind)
	if !ok {
		return
	}
	switch kind {
	case types.SettingWorkingModes:
		var v workingModesBlob
		if decode(raw, &v) {
			s.hub.SetClutchMode(types.ClutchWorkingMode(v.ClutchMode))
			s.hub.SetAltMode(types.AltButtonsWorkingMode(v.AltMode))
			s.hub.SetDPadMode(types.DPadWorkingMode(v.DPadMode))
		}
	case types.SettingBitePoint:
		var v bitePointBlob
		if decode(raw, &v) {
			s.hub.SetBitePoint(types.BitePoint(v.Value))
		}
	case types.SettingSecurityLock:
		var v securityLockBlob
		if decode(raw, &v) {
			s.hub.SetSecurityLock(v.Locked)
		}
	case types.SettingPulseWidthMultiplier:
		var v pulseWidthBlob
		if decode(raw, &v) {
			s.hub.SetPulseWidth(types.PulseWidthMultiplier(v.Value))
		}
	case types.SettingInputMap:
		var v inputMapBlob
		if decode(raw, &v) {
			applyInputMap(s.hub.Map(), v)
		}
	case types.SettingCustomHardwareID:
		var v hardwareIDBlob
		if decode(raw, &v) && s.hwid != nil {
			s.hwid.SetCustomHardwareID(v.VID, v.PID)
		}
	case types.SettingAxisCalibration:
		s.mu.Lock()
		s.axisCalib = raw
		s.mu.Unlock()
	case types.SettingBatteryCalibration:
		s.mu.Lock()
		s.batteryCalib = raw
		s.mu.Unlock()
	}
}

func (s *Service) save(kind types.SettingKind) {
	switch kind {
	case types.SettingWorkingModes:
		s.backend.SaveSetting(kind, encode(workingModesBlob{
			ClutchMode: uint8(s.hub.ClutchMode()),
			AltMode:    uint8(s.hub.AltMode()),
			DPadMode:   uint8(s.hub.DPadMode()),
		}))
	case types.SettingBitePoint:
		s.backend.SaveSetting(kind, encode(bitePointBlob{Value: uint8(s.hub.BitePoint())}))
	case types.SettingSecurityLock:
		s.backend.SaveSetting(kind, encode(securityLockBlob{Locked: bool(s.hub.SecurityLock())}))
	case types.SettingPulseWidthMultiplier:
		s.backend.SaveSetting(kind, encode(pulseWidthBlob{Value: uint8(s.hub.PulseWidth())}))
	case types.SettingInputMap:
		s.backend.SaveSetting(kind, encode(snapshotInputMap(s.hub.Map())))
	case types.SettingCustomHardwareID:
		if s.hwid == nil {
			return
		}
		vid, pid := s.hwid.CustomHardwareID()
		s.backend.SaveSetting(kind, encode(hardwareIDBlob{VID: vid, PID: pid}))
	case types.SettingAxisCalibration:
		s.mu.Lock()
		data := s.axisCalib
		s.mu.Unlock()
		s.backend.SaveSetting(kind, data)
	case types.SettingBatteryCalibration:
		s.mu.Lock()
		data := s.batteryCalib
		s.mu.Unlock()
		s.backend.SaveSetting(kind, data)
	}
}

type workingModesBlob struct {
	ClutchMode uint8 `json:"clutch_mode"`
	AltMode    uint8 `json:"alt_mode"`
	DPadMode   uint8 `json:"dpad_mode"`
}

type bitePointBlob struct {
	Value uint8 `json:"value"`
}

type securityLockBlob struct {
	Locked bool `json:"locked"`
}

type pulseWidthBlob struct {
	Value uint8 `json:"value"`
}

type hardwareIDBlob struct {
	VID uint16 `json:"vid"`
	PID uint16 `json:"pid"`
}

type mapEntryBlob struct {
	NoAlt uint8 `json:"no_alt"`
	Alt   uint8 `json:"alt"`
}

type inputMapBlob struct {
	Entries [64]mapEntryBlob `json:"entries"`
}

func snapshotInputMap(m *inputmap.Map) inputMapBlob {
	var v inputMapBlob
	for i := 0; i < 64; i++ {
		e, _ := m.Get(types.InputNumber(i))
		v.Entries[i] = mapEntryBlob{NoAlt: uint8(e.NoAlt), Alt: uint8(e.Alt)}
	}
	return v
}

func applyInputMap(m *inputmap.Map, v inputMapBlob) {
	for i := 0; i < 64; i++ {
		e := v.Entries[i]
		m.Set(types.InputNumber(i), types.UserInputNumber(e.NoAlt), types.UserInputNumber(e.Alt))
	}
}

// encode serializes v with stdlib encoding/json. tinyjson, the corpus's own
// JSON library, only ever appears decoding (Raw(...).Value()); it exposes
// no observed Marshal counterpart, so the write side uses the standard
// library instead of guessing at an unevidenced API.
func encode(v any) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		panic("storage: encode: " + err.Error())
	}
	return b
}

// decode mirrors the teacher's services/config.ConfigService read path:
// wrap the raw bytes in tinyjson.Raw, pull the decoded value out, then
// re-marshal/unmarshal into the typed blob. Returns false on malformed
// input rather than panicking, since corrupt flash contents are a runtime
// condition, not a configuration error.
func decode(raw []byte, v any) bool {
	r := tinyjson.Raw(raw)
	val := r.Value()
	r.EnsureEOF()
	if val == nil {
		return false
	}
	b, err := json.Marshal(val)
	if err != nil {
		return false
	}
	return json.Unmarshal(b, v) == nil
}
