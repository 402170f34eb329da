// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package common contains functions shared by the protocol layer and its
// tests. For example, the CRC8 checksum.
package common

// CRC8 calculates the 8-bit CRC (polynomial 0x31, initial value 0xff) of
// the byte slice parameter and returns the calculated value. Sensirion
// sensors frame every 16-bit word on the wire as 2 big-endian data bytes
// followed by this CRC over those 2 bytes, in both directions.
func CRC8(bytes []byte) byte {
	var crc byte = 0xff
	for _, val := range bytes {
		crc ^= val
		for i := 0; i < 8; i++ {
			if (crc & 0x80) == 0 {
				crc <<= 1
			} else {
				crc = (byte)((crc << 1) ^ 0x31)
			}
		}
	}
	return crc
}
