package runtime

import (
	"context"
	"testing"
)

func TestSend(t *testing.T) {
	msg := ResizeMsg{Width: 10, Height: 5}
	cmd := Send(msg)
	sendMsg, ok := cmd.(SendMsg)
	if !ok {
		t.Fatalf("expected Send to return SendMsg, got %T", cmd)
	}
	if sendMsg.Message != msg {
		t.Fatalf("SendMsg.Message mismatch")
	}
}

func TestEffect(t *testing.T) {
	calls := 0
	cmd := Effect{Run: func(ctx context.Context, post PostFunc) {
		calls++
	}}
	cmd.Run(context.Background(), func(Message) bool { return true })
	if calls != 1 {
		t.Fatalf("expected effect run to be called once, got %d", calls)
	}
}

func TestHandleResult(t *testing.T) {
	if Unhandled().Handled {
		t.Fatalf("expected unhandled result")
	}
	if !Handled().Handled {
		t.Fatalf("expected handled result")
	}
	res := WithCommand(Quit{}, Refresh{})
	if !res.Handled || len(res.Commands) != 2 {
		t.Fatalf("unexpected result %#v", res)
	}
}

func TestConstraints_Constrain(t *testing.T) {
	cases := []struct {
		c    Constraints
		in   Size
		want Size
	}{
		{Constraints{MaxWidth: 5, MaxHeight: 1}, Size{Width: 10, Height: 3}, Size{Width: 5, Height: 1}},
		{Constraints{MinWidth: 4}, Size{Width: 1, Height: 1}, Size{Width: 4, Height: 1}},
		{Tight(Size{Width: 3, Height: 2}), Size{}, Size{Width: 3, Height: 2}},
	}
	for i, tc := range cases {
		if got := tc.c.Constrain(tc.in); got != tc.want {
			t.Fatalf("case %d: got %+v, want %+v", i, got, tc.want)
		}
	}
}
