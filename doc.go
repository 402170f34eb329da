// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package sgp41 controls a Sensirion SGP41 VOC/NOx gas sensor over I²C.
//
// The sensor returns raw VOC and NOx signals as 16-bit tick values. The
// raw signals are compensated on-chip using the ambient relative humidity
// and temperature supplied by the host; the driver holds a compensation
// state that every measurement uses unless overridden per call.
//
// After power-up the sensor requires a conditioning period before the NOx
// channel produces valid data. Call Conditioning once per second for the
// first 10 seconds, then switch to MeasureRaw.
//
// # Datasheet
//
// https://sensirion.com/media/documents/5FE8673C/61E96F50/Sensirion_Gas_Sensors_Datasheet_SGP41.pdf
package sgp41
