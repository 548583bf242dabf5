package harness

// Mode selects the external tool's execution strategy.
type Mode int

const (
	// ModeParallel is the tool's default, concurrency-enabled mode.
	ModeParallel Mode = iota
	// ModeSerial disables the tool's internal concurrency.
	ModeSerial
)

// Args returns the command-line arguments selecting this mode. The tool
// runs parallel unless told otherwise, so only serial mode carries a flag.
func (m Mode) Args() []string {
	if m == ModeSerial {
		return []string{"--serial"}
	}

	return nil
}

func (m Mode) String() string {
	if m == ModeSerial {
		return "serial"
	}

	return "parallel"
}
