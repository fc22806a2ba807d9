package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrInputCancelled is returned when input is canceled by context.
var ErrInputCancelled = errors.New("input canceled")

// Confirmer runs yes/no and typed confirmations over an arbitrary
// reader/writer pair so tests can drive it without a terminal.
type Confirmer struct {
	reader *bufio.Reader
	writer io.Writer
}

// NewConfirmer creates a confirmer reading from r and prompting on w.
func NewConfirmer(r io.Reader, w io.Writer) *Confirmer {
	return &Confirmer{
		reader: bufio.NewReader(r),
		writer: w,
	}
}

// readLine reads one line, respecting context cancellation. The read
// goroutine may outlive a canceled call; the caller gets an immediate
// error either way.
func (c *Confirmer) readLine(ctx context.Context) (string, error) {
	type result struct {
		err   error
		value string
	}
	resultCh := make(chan result, 1)

	go func() {
		value, err := c.reader.ReadString('\n')
		resultCh <- result{value: value, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ErrInputCancelled
	case res := <-resultCh:
		if res.err != nil && res.err != io.EOF {
			return "", res.err
		}
		return strings.TrimSpace(res.value), nil
	}
}

// Confirm asks a yes/no question. Anything other than "y" or "s"
// (sí) counts as no.
func (c *Confirmer) Confirm(ctx context.Context, question string) (bool, error) {
	if _, err := fmt.Fprintf(c.writer, "%s (y/N): ", question); err != nil {
		return false, err
	}

	answer, err := c.readLine(ctx)
	if err != nil {
		return false, err
	}

	switch strings.ToLower(answer) {
	case "y", "yes", "s", "si", "sí":
		return true, nil
	default:
		return false, nil
	}
}

// ConfirmDeactivate asks before a soft delete. The item keeps its data
// and can be reactivated later.
func (c *Confirmer) ConfirmDeactivate(ctx context.Context, label string) (bool, error) {
	question := FormatWarning(fmt.Sprintf("Se desactivará %s. Podrás reactivarlo después.", label))
	if _, err := fmt.Fprintln(c.writer, question); err != nil {
		return false, err
	}
	return c.Confirm(ctx, "¿Continuar?")
}

// ConfirmHardDelete asks before a permanent delete. The user must type
// the word "eliminar" exactly; a bare "y" is not enough.
func (c *Confirmer) ConfirmHardDelete(ctx context.Context, label string) (bool, error) {
	warning := FormatError(fmt.Sprintf("Se eliminará %s de forma PERMANENTE. Esta acción no se puede deshacer.", label))
	if _, err := fmt.Fprintln(c.writer, warning); err != nil {
		return false, err
	}
	if _, err := fmt.Fprint(c.writer, "Escribe 'eliminar' para confirmar: "); err != nil {
		return false, err
	}

	answer, err := c.readLine(ctx)
	if err != nil {
		return false, err
	}
	return strings.EqualFold(answer, "eliminar"), nil
}
