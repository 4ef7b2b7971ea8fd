// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package image_test

import (
	"bytes"
	"errors"
	"io"
	"math"
	"testing"

	"github.com/aibor/bootimage/internal/image"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errWrite = errors.New("write failed")

type countingWriter struct {
	n int
}

func (w *countingWriter) Write(p []byte) (int, error) {
	w.n += len(p)
	return len(p), nil
}

// failingWriter accepts the given number of writes and fails all following.
type failingWriter struct {
	ok int
}

func (w *failingWriter) Write(p []byte) (int, error) {
	if w.ok <= 0 {
		return 0, errWrite
	}

	w.ok--

	return len(p), nil
}

type unreadableReader struct {
	t *testing.T
}

func (r unreadableReader) Read([]byte) (int, error) {
	r.t.Error("reader must not be read")
	return 0, io.EOF
}

func pattern(size int, seed byte) []byte {
	data := make([]byte, size)
	for i := range data {
		data[i] = seed + byte(i%251)
	}

	return data
}

func TestCompose(t *testing.T) {
	bootCode := bytes.Repeat([]byte{0xaa}, 10)
	kernel := []byte{0x11, 0x22, 0x33, 0x44, 0x55}

	var buf bytes.Buffer

	layout, err := image.Compose(&buf, bootCode, kernel)
	require.NoError(t, err)

	assert.Equal(t, image.Layout{
		BootCodeSize: 10,
		KernelSize:   5,
		PaddingSize:  507,
	}, layout)
	assert.Equal(t, uint64(1034), layout.Size())

	expected := make([]byte, 1034)
	copy(expected, bootCode)
	expected[10] = 0x05
	copy(expected[522:], kernel)

	if diff := cmp.Diff(expected, buf.Bytes()); diff != "" {
		t.Errorf("image mismatch (-want +got):\n%s", diff)
	}
}

func TestCompose_Sizes(t *testing.T) {
	tests := []struct {
		name            string
		bootCodeSize    int
		kernelSize      int
		expectedPadding uint64
	}{
		{
			name:            "empty kernel",
			bootCodeSize:    1,
			kernelSize:      0,
			expectedPadding: 0,
		},
		{
			name:            "aligned kernel",
			bootCodeSize:    3,
			kernelSize:      512,
			expectedPadding: 0,
		},
		{
			name:            "one byte over",
			bootCodeSize:    512,
			kernelSize:      513,
			expectedPadding: 511,
		},
		{
			name:            "larger kernel",
			bootCodeSize:    1024,
			kernelSize:      100_000,
			expectedPadding: 352,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bootCode := pattern(tt.bootCodeSize, 1)
			kernel := pattern(tt.kernelSize, 7)

			var buf bytes.Buffer

			layout, err := image.Compose(&buf, bootCode, kernel)
			require.NoError(t, err)

			assert.Equal(t, tt.expectedPadding, layout.PaddingSize)
			assert.Equal(t, layout.Size(), uint64(buf.Len()))
			assert.Equal(t,
				uint64(tt.bootCodeSize+image.HeaderSize+tt.kernelSize)+tt.expectedPadding,
				layout.Size(),
			)
			assert.Zero(t, (layout.Size()-uint64(tt.bootCodeSize))%image.SectorSize)

			require.NoError(t, image.Verify(buf.Bytes(), bootCode, kernel))

			hdr, err := image.ReadHeader(buf.Bytes(), tt.bootCodeSize)
			require.NoError(t, err)
			assert.Equal(t, uint32(tt.kernelSize), hdr.KernelSize)
			assert.Zero(t, hdr.Reserved)
		})
	}
}

func TestCompose_EmptyBootCode(t *testing.T) {
	var w countingWriter

	_, err := image.Compose(&w, nil, []byte{1})
	require.ErrorIs(t, err, image.ErrEmptyBootCode)
	assert.Zero(t, w.n)
}

func TestComposeFrom_SizeOverflow(t *testing.T) {
	tests := []struct {
		name string
		size uint64
	}{
		{
			name: "one over",
			size: math.MaxUint32 + 1,
		},
		{
			name: "4 GiB",
			size: 1 << 32,
		},
		{
			name: "huge",
			size: 1 << 50,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var w countingWriter

			_, err := image.ComposeFrom(&w, []byte{1}, unreadableReader{t}, tt.size)
			require.ErrorIs(t, err, image.ErrSizeOverflow)
			assert.Zero(t, w.n, "nothing must be written")
		})
	}
}

func TestComposeFrom_WriteErrors(t *testing.T) {
	tests := []struct {
		name         string
		okWrites     int
		expectedPart image.Part
	}{
		{
			name:         "boot code",
			okWrites:     0,
			expectedPart: image.PartBootCode,
		},
		{
			name:         "header",
			okWrites:     1,
			expectedPart: image.PartHeader,
		},
		{
			name:         "kernel",
			okWrites:     2,
			expectedPart: image.PartKernel,
		},
		{
			name:         "padding",
			okWrites:     3,
			expectedPart: image.PartPadding,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := &failingWriter{ok: tt.okWrites}

			_, err := image.Compose(w, []byte{1, 2}, []byte{3})
			require.ErrorIs(t, err, &image.IOError{})
			require.ErrorIs(t, err, errWrite)

			var ioErr *image.IOError

			require.ErrorAs(t, err, &ioErr)
			assert.Equal(t, tt.expectedPart, ioErr.Part)
		})
	}
}

func TestComposeFrom_ShortKernel(t *testing.T) {
	var buf bytes.Buffer

	_, err := image.ComposeFrom(&buf, []byte{1}, bytes.NewReader([]byte{1, 2}), 3)
	require.ErrorIs(t, err, io.EOF)

	var ioErr *image.IOError

	require.ErrorAs(t, err, &ioErr)
	assert.Equal(t, image.PartKernel, ioErr.Part)
}

func TestLayout_Offsets(t *testing.T) {
	layout, err := image.NewLayout(10, 5)
	require.NoError(t, err)

	assert.Equal(t, uint64(10), layout.HeaderOffset())
	assert.Equal(t, uint64(522), layout.KernelOffset())
	assert.Equal(t, uint64(1034), layout.Size())
}

func TestIOError(t *testing.T) {
	err := &image.IOError{Part: image.PartKernel, Err: errWrite}

	assert.Equal(t, "write kernel: write failed", err.Error())
	require.ErrorIs(t, err, &image.IOError{})
	require.ErrorIs(t, err, errWrite)
}
