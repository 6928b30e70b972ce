package rw

import (
	"bytes"
	"io"
	"io/ioutil"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLimitReaderRead(t *testing.T) {
	buf := bytes.NewBuffer([]byte("some data"))
	p := make([]byte, 64)

	n, err := NewLimitReader(buf, ReadLimitProps{FailOnExceed: true, Limit: 16}).Read(p)

	assert.Nil(t, err)
	assert.Equal(t, 0, buf.Len())
	assert.Equal(t, 9, n)
	assert.Equal(t, "some data", string(p[:n]))
}

func TestLimitReaderReadAllExact(t *testing.T) {
	r := NewLimitReader(bytes.NewBufferString("some data"), ReadLimitProps{FailOnExceed: true, Limit: 9})

	p, err := ioutil.ReadAll(r)

	assert.Nil(t, err)
	assert.Equal(t, "some data", string(p))
}

func TestLimitReaderReadAllErrExceed(t *testing.T) {
	r := NewLimitReader(bytes.NewBufferString("some data"), ReadLimitProps{FailOnExceed: true, Limit: 4})

	_, err := ioutil.ReadAll(r)

	assert.Equal(t, ErrLimitExceeded, err)
}

func TestLimitReaderTruncates(t *testing.T) {
	r := NewLimitReader(bytes.NewBufferString("some data"), ReadLimitProps{FailOnExceed: false, Limit: 4})

	p, err := ioutil.ReadAll(r)

	assert.Nil(t, err)
	assert.Equal(t, "some", string(p))

	n, err := r.Read(make([]byte, 8))
	assert.Equal(t, 0, n)
	assert.Equal(t, io.EOF, err)
}
