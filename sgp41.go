// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package sgp41

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/gasmon-io/sgp41/common"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
)

const (
	// SensorAddress is the only i2c address these devices support.
	SensorAddress uint16 = 0x59
	// generalCallAddress is the broadcast address. The sensor only listens
	// to it for the soft reset command.
	generalCallAddress uint16 = 0x00

	// selfTestOK is the raw self-test word reported by a healthy sensor.
	selfTestOK uint16 = 0xd400
)

const (
	// Compensation values are clamped to the range the sensor accepts.
	minRH = 0 * physic.PercentRH
	maxRH = 100 * physic.PercentRH

	minTemperature = -45*physic.Kelvin + physic.ZeroCelsius
	maxTemperature = 130*physic.Kelvin + physic.ZeroCelsius

	// Compensation state used until the caller provides real values.
	defaultRH          = 50 * physic.PercentRH
	defaultTemperature = 25*physic.Kelvin + physic.ZeroCelsius

	ticksDivisor = float64(65535)
)

// Structure to simplify sending commands to the device.
type command struct {
	// The 16-bit command word.
	cmdWord uint16
	// Settle time the sensor needs between the command write and the
	// response read. These are hardware mandated, from the datasheet.
	delay time.Duration
	// The number of 16-bit words in the response. Each word is followed
	// on the wire by a CRC byte.
	responseWords int
}

// The various implemented commands.

var cmdExecuteConditioning = command{
	cmdWord:       0x2612,
	delay:         50 * time.Millisecond,
	responseWords: 1,
}

var cmdMeasureRawSignals = command{
	cmdWord:       0x2619,
	delay:         50 * time.Millisecond,
	responseWords: 2,
}

var cmdExecuteSelfTest = command{
	cmdWord:       0x280e,
	delay:         320 * time.Millisecond,
	responseWords: 1,
}

var cmdTurnHeaterOff = command{
	cmdWord: 0x3615,
	delay:   time.Millisecond,
}

var cmdGetSerialNumber = command{
	cmdWord:       0x3682,
	delay:         time.Millisecond,
	responseWords: 3,
}

var cmdSoftReset = command{
	cmdWord: 0x0006,
	delay:   20 * time.Millisecond,
}

// Dev represents an SGP41 gas sensor.
//
// The driver is synchronous and performs no internal locking; the i2c bus
// is exclusive per transaction and must not be interleaved mid-exchange,
// so callers using a Dev from multiple goroutines must serialize access
// themselves.
type Dev struct {
	// The i2c bus device.
	d *i2c.Dev
	// Transient handle bound to the general-call address, used only by
	// SoftReset.
	gc *i2c.Dev

	humidity    physic.RelativeHumidity
	temperature physic.Temperature
}

// NewI2C creates a new SGP41 sensor using the supplied bus and address.
// The constant value SensorAddress should be supplied as the value for
// addr.
//
// The device is probed by reading its serial number; if the bus
// transaction fails or the serial number is degenerate (all-zero or
// all-one words), a *DeviceNotFoundError is returned.
func NewI2C(b i2c.Bus, addr uint16) (*Dev, error) {
	d := &Dev{
		d:           &i2c.Dev{Bus: b, Addr: addr},
		gc:          &i2c.Dev{Bus: b, Addr: generalCallAddress},
		humidity:    defaultRH,
		temperature: defaultTemperature,
	}
	words, err := d.sendCommand(cmdGetSerialNumber, nil)
	if err != nil {
		return nil, &DeviceNotFoundError{Cause: err}
	}
	allZero, allOnes := true, true
	for _, w := range words {
		allZero = allZero && w == 0x0000
		allOnes = allOnes && w == 0xffff
	}
	if allZero || allOnes {
		return nil, &DeviceNotFoundError{}
	}
	return d, nil
}

// SerialNumber returns the 48-bit unique serial number of the device.
func (d *Dev) SerialNumber() (uint64, error) {
	words, err := d.sendCommand(cmdGetSerialNumber, nil)
	if err != nil {
		return 0, err
	}
	return uint64(words[0])<<32 | uint64(words[1])<<16 | uint64(words[2]), nil
}

// SelfTest runs the on-chip self-test and returns the raw result word.
// A healthy sensor reports 0xd400. The test takes 320ms.
func (d *Dev) SelfTest() (uint16, error) {
	words, err := d.sendCommand(cmdExecuteSelfTest, nil)
	if err != nil {
		return 0, err
	}
	return words[0], nil
}

// SelfTestPassed runs the on-chip self-test and reports whether the raw
// result indicates a healthy sensor.
func (d *Dev) SelfTestPassed() (bool, error) {
	result, err := d.SelfTest()
	if err != nil {
		return false, err
	}
	return result == selfTestOK, nil
}

// MeasureRaw measures the raw VOC and NOx signals using the stored
// compensation state.
func (d *Dev) MeasureRaw() (voc, nox uint16, err error) {
	return d.MeasureRawCompensated(d.humidity, d.temperature)
}

// MeasureRawCompensated measures the raw VOC and NOx signals compensating
// with the supplied ambient humidity and temperature instead of the stored
// state. Values outside the supported range are clamped.
func (d *Dev) MeasureRawCompensated(rh physic.RelativeHumidity, t physic.Temperature) (voc, nox uint16, err error) {
	words, err := d.sendCommand(cmdMeasureRawSignals, []uint16{rhTicks(rh), temperatureTicks(t)})
	if err != nil {
		return 0, 0, err
	}
	return words[0], words[1], nil
}

// Conditioning runs one pre-heat cycle using the stored compensation state
// and returns the raw VOC signal. The sensor needs conditioning once per
// second for the first 10 seconds after power-up before NOx readings are
// valid.
func (d *Dev) Conditioning() (voc uint16, err error) {
	return d.ConditioningCompensated(d.humidity, d.temperature)
}

// ConditioningCompensated runs one pre-heat cycle compensating with the
// supplied ambient humidity and temperature instead of the stored state.
func (d *Dev) ConditioningCompensated(rh physic.RelativeHumidity, t physic.Temperature) (voc uint16, err error) {
	words, err := d.sendCommand(cmdExecuteConditioning, []uint16{rhTicks(rh), temperatureTicks(t)})
	if err != nil {
		return 0, err
	}
	return words[0], nil
}

// RawVOC returns the raw VOC signal using the stored compensation state.
func (d *Dev) RawVOC() (uint16, error) {
	voc, _, err := d.MeasureRaw()
	return voc, err
}

// RawNOx returns the raw NOx signal using the stored compensation state.
func (d *Dev) RawNOx() (uint16, error) {
	_, nox, err := d.MeasureRaw()
	return nox, err
}

// HeaterOff turns the integrated heater off and puts the sensor in idle
// mode. The sensor needs conditioning again after the heater is turned
// back on.
func (d *Dev) HeaterOff() error {
	_, err := d.sendCommand(cmdTurnHeaterOff, nil)
	return err
}

// SoftReset resets the device. The reset command is written to the i2c
// general-call address rather than the sensor's own address.
func (d *Dev) SoftReset() error {
	w := []byte{byte(cmdSoftReset.cmdWord >> 8), byte(cmdSoftReset.cmdWord)}
	if err := d.gc.Tx(w, nil); err != nil {
		return fmt.Errorf("sgp41 cmd 0x%x: %w", cmdSoftReset.cmdWord, err)
	}
	time.Sleep(cmdSoftReset.delay)
	return nil
}

// RelativeHumidity returns the stored compensation humidity.
func (d *Dev) RelativeHumidity() physic.RelativeHumidity {
	return d.humidity
}

// SetRelativeHumidity sets the compensation humidity used by measurements.
// Out-of-range values are clamped to [0%rH, 100%rH].
func (d *Dev) SetRelativeHumidity(rh physic.RelativeHumidity) {
	if rh < minRH {
		rh = minRH
	} else if rh > maxRH {
		rh = maxRH
	}
	d.humidity = rh
}

// Temperature returns the stored compensation temperature.
func (d *Dev) Temperature() physic.Temperature {
	return d.temperature
}

// SetTemperature sets the compensation temperature used by measurements.
// Out-of-range values are clamped to [-45°C, 130°C].
func (d *Dev) SetTemperature(t physic.Temperature) {
	if t < minTemperature {
		t = minTemperature
	} else if t > maxTemperature {
		t = maxTemperature
	}
	d.temperature = t
}

// Halt turns the heater off and idles the sensor. Implements
// conn.Resource.
func (d *Dev) Halt() error {
	return d.HeaterOff()
}

// String returns a string representation of the device. Implements
// conn.Resource.
func (d *Dev) String() string {
	return fmt.Sprintf("sgp41: %s", d.d.String())
}

// rhTicks converts a relative humidity to the 16-bit tick encoding the
// sensor expects. The value is clamped before scaling; rounding is
// round-half-up.
func rhTicks(rh physic.RelativeHumidity) uint16 {
	if rh < minRH {
		rh = minRH
	} else if rh > maxRH {
		rh = maxRH
	}
	percent := float64(rh) / float64(physic.PercentRH)
	return uint16(percent*ticksDivisor/100.0 + 0.5)
}

// temperatureTicks converts a temperature to the 16-bit tick encoding the
// sensor expects.
func temperatureTicks(t physic.Temperature) uint16 {
	if t < minTemperature {
		t = minTemperature
	} else if t > maxTemperature {
		t = maxTemperature
	}
	return uint16((t.Celsius()+45.0)*ticksDivisor/175.0 + 0.5)
}

// All commands to the sensor go through this function. The command word
// and CRC-framed parameter words are written in a single transaction,
// then after the command's settle time the response words are read back
// and validated.
func (d *Dev) sendCommand(cmd command, params []uint16) ([]uint16, error) {
	w := make([]byte, 2, 2+3*len(params))
	binary.BigEndian.PutUint16(w, cmd.cmdWord)
	for _, p := range params {
		var b [2]byte
		binary.BigEndian.PutUint16(b[:], p)
		w = append(w, b[0], b[1], common.CRC8(b[:]))
	}
	if err := d.d.Tx(w, nil); err != nil {
		return nil, fmt.Errorf("sgp41 cmd 0x%x: %w", cmd.cmdWord, err)
	}
	time.Sleep(cmd.delay)
	return d.readWords(cmd.responseWords)
}

// readWords reads count words in a single transaction, validating the CRC
// byte that trails each word. A single mismatch fails the whole read with
// no partial result: the VOC and NOx channels are compensated together,
// so a reading with one corrupt word is meaningless.
func (d *Dev) readWords(count int) ([]uint16, error) {
	if count == 0 {
		return nil, nil
	}
	r := make([]byte, count*3)
	if err := d.d.Tx(nil, r); err != nil {
		return nil, fmt.Errorf("sgp41 read: %w", err)
	}
	words := make([]uint16, count)
	for ix := range words {
		if common.CRC8(r[ix*3:ix*3+2]) != r[ix*3+2] {
			return nil, &ChecksumError{}
		}
		words[ix] = binary.BigEndian.Uint16(r[ix*3:])
	}
	return words, nil
}

var _ conn.Resource = &Dev{}
