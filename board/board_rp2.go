//go:build rp2040 || rp2350

package board

import (
	"io"
	"machine"
	"time"

	"bspcore-go/config"

	uartx "github.com/jangala-dev/tinygo-uartx/uartx"
	"tinygo.org/x/drivers"
)

var (
	console io.Writer = discard{}
	i2c     *machine.I2C
)

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

func Name() string { return "pico" }

// Init configures the console UART, the I2C0 controller and the status LED.
func Init(cfg config.Board) error {
	led := machine.LED
	led.Configure(machine.PinConfig{Mode: machine.PinOutput})
	led.High() // signal "running"

	u := uartx.UART0
	if err := u.Configure(uartx.UARTConfig{
		BaudRate: cfg.UARTBaud,
		TX:       machine.UART0_TX_PIN,
		RX:       machine.UART0_RX_PIN,
	}); err != nil {
		return err
	}
	console = u

	hw := machine.I2C0
	if err := hw.Configure(machine.I2CConfig{
		SDA:       machine.I2C0_SDA_PIN,
		SCL:       machine.I2C0_SCL_PIN,
		Frequency: cfg.I2CHz,
	}); err != nil {
		return err
	}
	i2c = hw
	return nil
}

func Output() io.Writer { return console }

func I2C() (drivers.I2C, bool) {
	if i2c == nil {
		return nil, false
	}
	return i2c, true
}

// Halt prints the fatal line and blinks the LED forever.
func Halt(payload any) {
	_, _ = io.WriteString(console, Describe(payload)+"\r\n")
	led := machine.LED
	led.Configure(machine.PinConfig{Mode: machine.PinOutput})
	for {
		led.High()
		time.Sleep(250 * time.Millisecond)
		led.Low()
		time.Sleep(250 * time.Millisecond)
	}
}
