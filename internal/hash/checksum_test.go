package hash

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChecksum(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		sum  uint64
	}{
		{"empty", []byte{}, 0xef46db3751d8e999},
		{"short", []byte("test"), 0x4fdcca5ddb678139},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.sum, Checksum(tt.data))
		})
	}
}

func TestDigest_MatchesChecksum(t *testing.T) {
	payload := []byte("SPCO\x04\x00\x00\x00\x04\x00\x00\x00\x01\x00")

	d := NewDigest()
	_, err := d.Write(payload[:5])
	require.NoError(t, err)
	_, err = d.Write(payload[5:])
	require.NoError(t, err)

	require.Equal(t, Checksum(payload), d.Sum64())
}
