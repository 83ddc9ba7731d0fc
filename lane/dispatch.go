package lane

import "golang.org/x/sys/cpu"

// register widths in bytes, widest first. The dispatch code picks the first
// available entry; the generic entry is always available.
type registerImpl struct {
	bytes     int
	name      string
	available bool
}

var registers = []registerImpl{
	{64, "avx512", cpu.X86.HasAVX512F && cpu.X86.HasAVX512BW},
	{32, "avx2", cpu.X86.HasAVX2},
	{16, "neon", cpu.ARM64.HasASIMD},
	{16, "sse2", cpu.X86.HasSSE2},
	{16, "generic", true},
}

// best register available on this machine
var register = func() registerImpl {
	for _, r := range registers {
		if r.available {
			return r
		}
	}

	panic("no register width available")
}()

// Widths lists the lane widths the codec is instantiated for; 1 is scalar.
var Widths = []int{1, 4, 8, 16, 32, 64}

// PreferredWidth returns the supported lane width that fills one vector register
// of this machine with elements of elemSize bytes.
func PreferredWidth(elemSize int) int {
	if elemSize <= 0 {
		panic("element size must be positive")
	}
	want := register.bytes / elemSize
	best := Widths[1]
	for _, w := range Widths[1:] {
		if w <= want {
			best = w
		}
	}
	return best
}

// Register names the vector register PreferredWidth is sized for.
func Register() string {
	return register.name
}
