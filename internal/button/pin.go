package button

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/callebjorkell/ledsim/internal/sim"
	log "github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/pin"
)

var ErrInputOnly = errors.New("button: pin is input only")

// Pin is a push button wired between a GPIO input and ground, driven by a
// simulated button. With the pull-up enabled it reads High when released and
// Low while pressed, like the real switch.
type Pin struct {
	name   string
	number int
	edges  chan gpio.Level

	mu      sync.Mutex
	pressed bool
	pull    gpio.Pull
	edge    gpio.Edge
}

func NewPin(number int) *Pin {
	return &Pin{
		name:   fmt.Sprintf("SIM_BTN%d", number),
		number: number,
		edges:  make(chan gpio.Level, 16),
		pull:   gpio.PullUp,
	}
}

// Attach makes the simulated button at index drive the pin.
func (p *Pin) Attach(r Registrar, index int) {
	r.RegisterButtonCallback(index, func(flags sim.ButtonFlag, _ any) {
		p.Set(flags&sim.FlagPressed != 0)
	}, nil)
}

// Register adds the pin to the periph registry so it can be found by name.
func (p *Pin) Register() error {
	return gpioreg.Register(p)
}

// Set presses or releases the button.
func (p *Pin) Set(pressed bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.pressed == pressed {
		return
	}
	before := p.level()
	p.pressed = pressed
	after := p.level()
	if before == after || !p.detects(after) {
		return
	}

	select {
	case p.edges <- after:
	default:
		log.Debugf("%s: dropping edge", p.name)
	}
}

func (p *Pin) level() gpio.Level {
	if p.pressed {
		return gpio.Low
	}
	return gpio.Level(p.pull == gpio.PullUp)
}

func (p *Pin) detects(l gpio.Level) bool {
	switch p.edge {
	case gpio.BothEdges:
		return true
	case gpio.RisingEdge:
		return l == gpio.High
	case gpio.FallingEdge:
		return l == gpio.Low
	}
	return false
}

func (p *Pin) String() string {
	return fmt.Sprintf("%s(%d)", p.name, p.number)
}

func (p *Pin) Halt() error {
	return nil
}

func (p *Pin) Name() string {
	return p.name
}

func (p *Pin) Number() int {
	return p.number
}

func (p *Pin) Function() string {
	return string(p.Func())
}

func (p *Pin) Func() pin.Func {
	if p.Read() == gpio.Low {
		return gpio.IN_LOW
	}
	return gpio.IN_HIGH
}

func (p *Pin) SupportedFuncs() []pin.Func {
	return []pin.Func{gpio.IN}
}

func (p *Pin) SetFunc(f pin.Func) error {
	if f != gpio.IN {
		return ErrInputOnly
	}
	return nil
}

func (p *Pin) In(pull gpio.Pull, edge gpio.Edge) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if pull != gpio.PullNoChange {
		p.pull = pull
	}
	p.edge = edge

	// Flush edges seen with the previous setup.
	for {
		select {
		case <-p.edges:
		default:
			return nil
		}
	}
}

func (p *Pin) Read() gpio.Level {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.level()
}

// WaitForEdge waits for an edge enabled by In. A negative timeout waits
// forever.
func (p *Pin) WaitForEdge(timeout time.Duration) bool {
	if timeout < 0 {
		<-p.edges
		return true
	}

	t := time.NewTimer(timeout)
	defer t.Stop()
	select {
	case <-p.edges:
		return true
	case <-t.C:
		return false
	}
}

func (p *Pin) Pull() gpio.Pull {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.pull
}

func (p *Pin) DefaultPull() gpio.Pull {
	return gpio.PullUp
}

func (p *Pin) Out(gpio.Level) error {
	return ErrInputOnly
}

func (p *Pin) PWM(gpio.Duty, physic.Frequency) error {
	return ErrInputOnly
}

var _ gpio.PinIO = &Pin{}
