package sgp41

// DeviceNotFoundError is returned by NewI2C when the sensor does not answer
// on the bus, or answers the serial number read with a degenerate all-zero
// or all-one value.
type DeviceNotFoundError struct {
	// Cause holds the underlying transport error, if any.
	Cause error
}

func (e *DeviceNotFoundError) Error() string {
	if e.Cause != nil {
		return "sgp41: failed to find sensor, check wiring: " + e.Cause.Error()
	}
	return "sgp41: failed to find sensor, check wiring"
}

func (e *DeviceNotFoundError) Unwrap() error {
	return e.Cause
}

// ChecksumError is returned when a word read from the sensor fails CRC
// validation. The whole read is discarded; the caller may retry the
// operation.
type ChecksumError struct{}

func (e *ChecksumError) Error() string {
	return "sgp41: checksum mismatch on word read from sensor"
}
