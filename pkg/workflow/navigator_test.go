package workflow

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entrhq/eventfill/pkg/browser"
)

// lateFrame exposes its children only from the given scan onwards.
type lateFrame struct {
	*fakeFrame
	scans int
	after int
}

func (f *lateFrame) ChildFrames(ctx context.Context) ([]browser.Frame, error) {
	f.scans++
	if f.scans < f.after {
		return nil, nil
	}
	return f.fakeFrame.ChildFrames(ctx)
}

func TestNavigator_AwaitFrameEntry(t *testing.T) {
	tests := []struct {
		name     string
		pattern  string
		wantID   string
		wantKind Kind
		wantErr  bool
	}{
		{name: "literal id", pattern: "contentFrame", wantID: "contentFrame"},
		{name: "generated suffix", pattern: "idEditorIFrame_*", wantID: "idEditorIFrame_8842571"},
		{name: "no match", pattern: "idMissing_*", wantErr: true, wantKind: KindTimeout},
		{name: "literal is not a prefix", pattern: "content", wantErr: true, wantKind: KindTimeout},
		{name: "invalid pattern", pattern: "[content", wantErr: true, wantKind: KindDriverFault},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := newFrame("", nil)
			root.nest(newFrame("sidebarFrame", nil))
			root.nest(newFrame("contentFrame", nil))
			root.nest(newFrame("idEditorIFrame_8842571", nil))

			st := NewState(&fakeWindow{main: root})
			nav := NewNavigator(st, time.Millisecond, false, nil)

			err := nav.AwaitFrameEntry(context.Background(), tt.pattern, 20*time.Millisecond)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, KindOf(err))
				assert.Zero(t, st.Depth())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 1, st.Depth())
			id, _ := st.Current().ElementID(context.Background())
			assert.Equal(t, tt.wantID, id)
		})
	}
}

func TestNavigator_AwaitFrameEntry_Polls(t *testing.T) {
	inner := newFrame("", nil)
	inner.nest(newFrame("idReloadIFrame_SelectRecipientDialog", nil))
	root := &lateFrame{fakeFrame: inner, after: 3}

	st := NewState(&fakeWindow{main: root})
	nav := NewNavigator(st, time.Millisecond, false, nil)

	err := nav.AwaitFrameEntry(context.Background(), "idReloadIFrame_*", time.Second)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, root.scans, 3)
	assert.Equal(t, 1, st.Depth())
}

func TestNavigator_AwaitFrameEntry_Cancelled(t *testing.T) {
	root := newFrame("", nil)
	st := NewState(&fakeWindow{main: root})
	nav := NewNavigator(st, time.Millisecond, false, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := nav.AwaitFrameEntry(ctx, "contentFrame", time.Second)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNavigator_AwaitClickable(t *testing.T) {
	frame := newFrame("", nil)
	frame.add("id=ready")
	frame.add("id=hidden").hidden = true

	st := NewState(&fakeWindow{main: frame})
	nav := NewNavigator(st, time.Millisecond, false, nil)
	ctx := context.Background()

	assert.NoError(t, nav.AwaitClickable(ctx, "id=ready", time.Millisecond))

	err := nav.AwaitClickable(ctx, "id=hidden", time.Millisecond)
	assert.Equal(t, KindTimeout, KindOf(err))
	assert.ErrorIs(t, err, ErrTimeout)

	err = nav.AwaitClickable(ctx, "id=missing", time.Millisecond)
	assert.Equal(t, KindElementAbsent, KindOf(err))
	assert.ErrorIs(t, err, ErrElementAbsent)
	assert.ErrorIs(t, err, browser.ErrTimeout)
}

func TestNavigator_AwaitText(t *testing.T) {
	frame := newFrame("", nil)
	frame.add("id=code").text = "<P><STRONG>Hike</STRONG></P>"

	st := NewState(&fakeWindow{main: frame})
	nav := NewNavigator(st, time.Millisecond, false, nil)
	ctx := context.Background()

	assert.NoError(t, nav.AwaitText(ctx, "id=code", "<STRONG>", time.Millisecond))
	assert.Equal(t, KindTimeout, KindOf(nav.AwaitText(ctx, "id=code", "<EM>", time.Millisecond)))
	assert.Equal(t, KindElementAbsent, KindOf(nav.AwaitPresent(ctx, "id=gone", time.Millisecond)))
}

func TestNavigator_Check(t *testing.T) {
	timeout := &Error{Kind: KindTimeout, Op: "await clickable", Identifier: "id=x", Err: browser.ErrTimeout}
	pattern := &Error{Kind: KindPatternNotFound, Op: "extract", Identifier: "id=d"}
	target := &Error{Kind: KindTargetNotFound, Op: "locate target", Identifier: "title"}

	tests := []struct {
		name     string
		strict   bool
		err      error
		wantStop bool
	}{
		{name: "nil", err: nil},
		{name: "timeout lenient", err: timeout},
		{name: "timeout strict", strict: true, err: timeout, wantStop: true},
		{name: "plain driver error lenient", err: assert.AnError},
		{name: "pattern not found", err: pattern, wantStop: true},
		{name: "target not found", err: target, wantStop: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen []*Error
			nav := NewNavigator(NewState(&fakeWindow{main: newFrame("", nil)}), time.Millisecond, tt.strict, func(e *Error) {
				seen = append(seen, e)
			})

			err := nav.Check(context.Background(), tt.err)
			if tt.wantStop {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}

			if tt.err == nil {
				assert.Empty(t, seen)
			} else {
				assert.Len(t, seen, 1)
			}
		})
	}
}

func TestNavigator_Check_CancelledStops(t *testing.T) {
	nav := NewNavigator(NewState(&fakeWindow{main: newFrame("", nil)}), time.Millisecond, false, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := nav.Check(ctx, &Error{Kind: KindTimeout, Op: "await", Identifier: "id=x"})
	assert.Error(t, err)
}
