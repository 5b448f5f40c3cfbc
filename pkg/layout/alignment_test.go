package layout

import "testing"

func TestAlignHorizontal(t *testing.T) {
	tests := []struct {
		align     HorizontalAlignment
		wantX     float64
		wantWidth float64
	}{
		{HorizontalStretch, 10, 100},
		{HorizontalLeft, 10, 30},
		{HorizontalCenter, 45, 30},
		{HorizontalRight, 80, 30},
	}
	for _, tt := range tests {
		x, w := AlignHorizontal(tt.align, 10, 100, 30)
		if x != tt.wantX || w != tt.wantWidth {
			t.Errorf("%s: got (%v, %v), want (%v, %v)", tt.align, x, w, tt.wantX, tt.wantWidth)
		}
	}
}

func TestAlignVerticalClampsToSlot(t *testing.T) {
	y, h := AlignVertical(VerticalBottom, 0, 50, 80)
	if y != 0 || h != 50 {
		t.Errorf("got (%v, %v), want (0, 50)", y, h)
	}
	y, h = AlignVertical(VerticalCenter, 0, 51, 20)
	if y != 15.5 || h != 20 {
		t.Errorf("center got (%v, %v), want (15.5, 20)", y, h)
	}
}

func TestDefaultAlignmentIsStretch(t *testing.T) {
	var h HorizontalAlignment
	var v VerticalAlignment
	if h != HorizontalStretch || v != VerticalStretch {
		t.Error("zero alignments should be Stretch")
	}
	if ParseHorizontalAlignment("bogus") != HorizontalStretch {
		t.Error("unknown values should parse as Stretch")
	}
	if ParseVerticalAlignment("Top") != VerticalTop {
		t.Error("Top should parse")
	}
}
