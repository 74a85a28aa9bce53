package stream

import "testing"

func TestStagingSize(t *testing.T) {
	tests := []struct {
		n    int
		want int
	}{
		{16, 2 * 16 * 16 * 16},
		{128, 2 * 128 * 128 * 16},
		{512, 8 * 1024 * 1024}, // 8 MiB
	}
	for _, tt := range tests {
		if got := StagingSize(tt.n); got != tt.want {
			t.Errorf("StagingSize(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
}

func TestMipLevels(t *testing.T) {
	tests := []struct {
		n    int
		want int
	}{
		{16, 5},
		{256, 9},
		{1024, 11},
	}
	for _, tt := range tests {
		if got := mipLevels(tt.n); got != tt.want {
			t.Errorf("mipLevels(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}

	s := &Streamer{cfg: Config{TileSize: 256, Mipmapping: false}}
	if got := s.MipLevels(); got != 1 {
		t.Errorf("MipLevels without mipmapping = %d, want 1", got)
	}
	s.cfg.Mipmapping = true
	if got := s.MipLevels(); got != 9 {
		t.Errorf("MipLevels with mipmapping = %d, want 9", got)
	}
}
