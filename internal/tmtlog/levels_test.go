// Copyright 2016-2025 Fraunhofer AISEC
//
// SPDX-License-Identifier: Apache-2.0
//                                 /$$$$$$  /$$                                     /$$
//                               /$$__  $$|__/                                    | $$
//   /$$$$$$$  /$$$$$$  /$$$$$$$ | $$  \__/ /$$  /$$$$$$  /$$$$$$/$$$$   /$$$$$$  /$$$$$$    /$$$$$$
//  /$$_____/ /$$__  $$| $$__  $$| $$$$    | $$ /$$__  $$| $$_  $$_  $$ |____  $$|_  $$_/   /$$__  $$
// | $$      | $$  \ $$| $$  \ $$| $$_/    | $$| $$  \__/| $$ \ $$ \ $$  /$$$$$$$  | $$    | $$$$$$$$
// | $$      | $$  | $$| $$  | $$| $$      | $$| $$      | $$ | $$ | $$ /$$__  $$  | $$ /$$| $$_____/
// |  $$$$$$$|  $$$$$$/| $$  | $$| $$      | $$| $$      | $$ | $$ | $$|  $$$$$$$  |  $$$$/|  $$$$$$$
// \_______/ \______/ |__/  |__/|__/      |__/|__/      |__/ |__/ |__/ \_______/   \___/   \_______/

// This file is part of Confirmate Core.
package tmtlog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevel_UnmarshalText(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		want       Level
		wantString string
		wantInt    int
		wantErr    bool
	}{
		{
			name:       "INFO",
			text:       "INFO",
			want:       LevelInfo,
			wantString: "INFO",
			wantInt:    0,
		},
		{
			name:       "TRACE",
			text:       "TRACE",
			want:       LevelTrace,
			wantString: "TRACE",
			wantInt:    -8,
		},
		{
			name:       "INFO+2",
			text:       "INFO+2",
			want:       Level(2),
			wantString: "INFO+2",
			wantInt:    2,
		},
		{
			name:       "WARN-1",
			text:       "WARN-1",
			want:       Level(3),
			wantString: "INFO+3",
			wantInt:    3,
		},
		{
			name:    "invalid",
			text:    "NOPE",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Level
			err := got.UnmarshalText([]byte(tt.text))

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantString, got.String())
			assert.Equal(t, tt.wantInt, int(got))
		})
	}
}

func TestLevel_JSONUnmarshal(t *testing.T) {
	type Config struct {
		LogLevel Level `json:"log_level"`
	}

	tests := []struct {
		name string
		json string
		want Level
	}{
		{
			name: "DEBUG",
			json: `{"log_level": "DEBUG"}`,
			want: LevelDebug,
		},
		{
			name: "TRACE",
			json: `{"log_level": "TRACE"}`,
			want: LevelTrace,
		},
		{
			name: "INFO+2",
			json: `{"log_level": "INFO+2"}`,
			want: Level(2),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Config
			require.NoError(t, json.Unmarshal([]byte(tt.json), &got))
			assert.Equal(t, tt.want, got.LogLevel)
		})
	}
}
