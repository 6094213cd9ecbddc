package task

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgress_Interactive(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress("catalog", &buf, WithInteractive(true), WithWidth(60))

	p.Update(50)
	out := buf.String()
	assert.Contains(t, out, "catalog")
	assert.Contains(t, out, " 50%")
	assert.Equal(t, 20, strings.Count(out, "█"))
	assert.Equal(t, 20, strings.Count(out, "░"))

	buf.Reset()
	p.Update(30)
	assert.Empty(t, buf.String(), "progress never goes backwards")

	p.Func()(150)
	assert.Contains(t, buf.String(), "100%")

	buf.Reset()
	p.Done(nil)
	assert.Contains(t, buf.String(), "✓ catalog")

	buf.Reset()
	p.Update(100)
	p.Done(errors.New("late"))
	assert.Empty(t, buf.String(), "nothing is drawn after Done")
}

func TestProgress_Failure(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress("product", &buf, WithInteractive(true))
	p.Done(errors.New("disk full"))
	assert.Contains(t, buf.String(), "✗ product: disk full")
}

func TestProgress_NonInteractiveWritesNothing(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress("catalog", &buf, WithInteractive(false))
	for _, v := range []int{0, 10, 30, 60, 100} {
		p.Update(v)
	}
	p.Done(nil)
	assert.Empty(t, buf.String())
	assert.Equal(t, 100, p.milestone)
}

func TestProgress_BarWidthIsClamped(t *testing.T) {
	narrow := NewProgress("x", &bytes.Buffer{}, WithWidth(5))
	assert.Equal(t, 10, strings.Count(narrow.bar(0), "░"))

	wide := NewProgress("x", &bytes.Buffer{}, WithWidth(400))
	assert.Equal(t, 40, strings.Count(wide.bar(100), "█"))
}
