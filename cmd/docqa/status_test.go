package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDescribeState(t *testing.T) {
	tests := []struct {
		name           string
		storeType      string
		snapshotExists bool
		stored         string
		ok             bool
		current        string
		want           string
	}{
		{
			name:      "local no snapshot",
			storeType: "local",
			want:      "stale (no persisted index)",
		},
		{
			name:           "local sidecar missing",
			storeType:      "local",
			snapshotExists: true,
			current:        "abc",
			want:           "stale (fingerprint sidecar missing)",
		},
		{
			name:           "local corpus changed",
			storeType:      "local",
			snapshotExists: true,
			stored:         "old",
			ok:             true,
			current:        "new",
			want:           "stale (corpus changed since last build)",
		},
		{
			name:           "local fresh",
			storeType:      "local",
			snapshotExists: true,
			stored:         "abc",
			ok:             true,
			current:        "abc",
			want:           "fresh",
		},
		{
			name:      "qdrant matching sidecar is not reported fresh",
			storeType: "qdrant",
			stored:    "abc",
			ok:        true,
			current:   "abc",
			want:      "unknown (sidecar matches; qdrant collection not checked)",
		},
		{
			name:      "qdrant stale sidecar still reported stale",
			storeType: "qdrant",
			stored:    "old",
			ok:        true,
			current:   "new",
			want:      "stale (corpus changed since last build)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := describeState(tt.storeType, tt.snapshotExists, tt.stored, tt.ok, tt.current)
			assert.Equal(t, tt.want, got)
		})
	}
}
