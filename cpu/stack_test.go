package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStack_Push(t *testing.T) {
	assert := assert.New(t)

	s := &Stack{}
	assert.True(s.Empty())
	assert.False(s.Full())

	assert.True(s.Push(0x234))
	assert.False(s.Empty())
	assert.Equal(1, s.Sp)
	assert.Equal(uint16(0x234), s.Data[0])
}

func TestStack_Pop(t *testing.T) {
	assert := assert.New(t)

	s := &Stack{}
	s.Push(0x202)
	s.Push(0x3FE)

	val, ok := s.Pop()
	assert.True(ok)
	assert.Equal(uint16(0x3FE), val)
	assert.Equal(1, s.Sp)

	val, ok = s.Pop()
	assert.True(ok)
	assert.Equal(uint16(0x202), val)
	assert.Equal(0, s.Sp)
}

func TestStack_Pop_Empty(t *testing.T) {
	assert := assert.New(t)

	s := &Stack{}
	val, ok := s.Pop()
	assert.False(ok)
	assert.Equal(uint16(0), val)
	assert.Equal(0, s.Sp)
}

func TestStack_Peek(t *testing.T) {
	assert := assert.New(t)

	s := &Stack{}
	_, ok := s.Peek()
	assert.False(ok)

	s.Push(0x202)
	s.Push(0x204)

	val, ok := s.Peek()
	assert.True(ok)
	assert.Equal(uint16(0x204), val)
	assert.Equal(2, s.Sp)
}

func TestStack_Full(t *testing.T) {
	assert := assert.New(t)

	s := &Stack{}
	for n := range STACK_LIMIT {
		assert.False(s.Full())
		assert.True(s.Push(uint16(n)))
	}

	assert.True(s.Full())
	assert.False(s.Push(0xFFF))
	assert.Equal(STACK_LIMIT, s.Sp)

	val, ok := s.Peek()
	assert.True(ok)
	assert.Equal(uint16(STACK_LIMIT-1), val)
}

func TestStack_Set(t *testing.T) {
	assert := assert.New(t)

	s := &Stack{}
	assert.NoError(s.Set(3, 0x456))
	assert.Equal(uint16(0x456), s.Data[3])
	assert.True(s.Empty())

	assert.ErrorIs(s.Set(-1, 0), ErrStackIndex)
	assert.ErrorIs(s.Set(STACK_LIMIT, 0), ErrStackIndex)

	assert.NoError(s.SetSp(4))
	val, ok := s.Peek()
	assert.True(ok)
	assert.Equal(uint16(0x456), val)

	assert.ErrorIs(s.SetSp(STACK_LIMIT+1), ErrStackIndex)
	assert.ErrorIs(s.SetSp(-1), ErrStackIndex)
}

func TestStack_Reset(t *testing.T) {
	assert := assert.New(t)

	s := &Stack{}
	s.Push(0x200)
	s.Push(0x300)

	s.Reset()
	assert.True(s.Empty())
	assert.Equal([STACK_LIMIT]uint16{}, s.Data)
}
