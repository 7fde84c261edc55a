//go:build rp2040 || rp2350

package transport

import (
	"context"
	"io"

	"github.com/jangala-dev/tinygo-uartx/uartx"
	"machine"
)

// uartLink adapts *uartx.UART to io.ReadWriteCloser; the hardware UART has
// no notion of closing, so Close is a no-op, the same shape bridge.go's own
// "eg. in main or a tinygo_uart.go" comment points platform code toward.
type uartLink struct{ u *uartx.UART }

func (l uartLink) Read(p []byte) (int, error)  { return l.u.Read(p) }
func (l uartLink) Write(p []byte) (int, error) { return l.u.Write(p) }
func (l uartLink) Close() error                { return nil }

// init wires UARTDial to the board's first UART peripheral on its default
// pins, so a board build of this firmware core needs no platform-specific
// main.go glue beyond importing this package.
func init() {
	UARTDial = func(ctx context.Context) (io.ReadWriteCloser, error) {
		hw := uartx.UART0
		err := hw.Configure(uartx.UARTConfig{
			BaudRate: 115200,
			TX:       machine.Pin(0),
			RX:       machine.Pin(1),
		})
		if err != nil {
			return nil, err
		}
		return uartLink{u: hw}, nil
	}
}
