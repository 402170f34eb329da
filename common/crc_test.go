// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package common

import "testing"

func TestCRC8(t *testing.T) {
	var tests = []struct {
		bytes  []byte
		result byte
	}{
		// 0xbeef is the checksum example from the Sensirion datasheets.
		{bytes: []byte{0xbe, 0xef}, result: 0x92},
		{bytes: []byte{0x01, 0xa4}, result: 0x4d},
		{bytes: []byte{0xab, 0xcd}, result: 0x6f},
		// The degenerate words matter: they frame the all-zero/all-one
		// serial numbers used for device presence checks.
		{bytes: []byte{0x00, 0x00}, result: 0x81},
		{bytes: []byte{0xff, 0xff}, result: 0xac},
	}
	for _, test := range tests {
		res := CRC8(test.bytes)
		if res != test.result {
			t.Errorf("CRC8(%#v)!=0x%x received 0x%x", test.bytes, test.result, res)
		}
		// The checksum is pure; repeated calls must agree.
		if again := CRC8(test.bytes); again != res {
			t.Errorf("CRC8(%#v) not deterministic: 0x%x then 0x%x", test.bytes, res, again)
		}
	}
}
