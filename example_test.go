//go:build examples
// +build examples

// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package sgp41_test

import (
	"fmt"
	"log"
	"time"

	"github.com/gasmon-io/sgp41"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"
)

// basic example program for the sgp41 sensor using this library.
//
// To execute this as a stand-alone program:
//
// Copy the file example_test.go to a new directory.
// rename the file to main.go
// rename the Example() function to main, and the package to main
//
// execute:
//
//	go mod init mydomain.com/sgp41
//	go mod tidy
//	go build -o main main.go
//	./main
func Example() {
	if _, err := host.Init(); err != nil {
		fmt.Println(err)
	}
	bus, err := i2creg.Open("")
	if err != nil {
		log.Fatal(err)
	}
	dev, err := sgp41.NewI2C(bus, sgp41.SensorAddress)
	if err != nil {
		log.Fatal(err)
	}

	// Supply ambient conditions from an external temperature/humidity
	// sensor for more accurate readings. Without this the driver uses
	// 50%rH / 25°C.
	dev.SetRelativeHumidity(31 * physic.PercentRH)
	dev.SetTemperature(physic.ZeroCelsius + 22*physic.Celsius)

	// The sensor needs conditioning once per second for the first 10
	// seconds after power-up.
	for i := 0; i < 10; i++ {
		voc, err := dev.Conditioning()
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("Conditioning the sensor, %d of 10 times: %d\n", i+1, voc)
		time.Sleep(time.Second)
	}

	fmt.Println("Sensor ready! Starting the loop..")
	for {
		voc, nox, err := dev.MeasureRaw()
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("Raw VOC: %d Raw NOx: %d\n", voc, nox)
		time.Sleep(time.Second)
	}
}
