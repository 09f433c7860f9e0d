package task

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestCanTransition(t *testing.T) {
	allowed := map[[2]Status]bool{
		{StatusTodo, StatusDoing}: true,
		{StatusDoing, StatusDone}: true,
		{StatusDoing, StatusTodo}: true,
		{StatusDone, StatusDoing}: true,
	}
	for _, from := range Statuses() {
		for _, to := range Statuses() {
			want := allowed[[2]Status{from, to}]
			if got := CanTransition(from, to); got != want {
				t.Errorf("CanTransition(%s, %s) = %v, want %v", from, to, got, want)
			}
		}
	}
	if CanTransition(StatusTodo, "Blocked") {
		t.Error("CanTransition to unknown status should be false")
	}
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		input   string
		want    Status
		wantErr bool
	}{
		{"todo", StatusTodo, false},
		{"Doing", StatusDoing, false},
		{" DONE ", StatusDone, false},
		{"blocked", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseStatus(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseStatus(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseStatus(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTransitionRejectedLeavesTaskUnchanged(t *testing.T) {
	tests := []struct {
		name string
		task Task
		to   Status
	}{
		{
			name: "todo to done",
			task: Task{ID: 1, Status: StatusTodo, Changes: Ledger{}},
			to:   StatusDone,
		},
		{
			name: "done to todo",
			task: Task{ID: 2, Status: StatusDone, Changes: Ledger{
				{From: StatusTodo, To: StatusDoing, On: baseTime},
				{From: StatusDoing, To: StatusDone, On: baseTime.Add(time.Hour)},
			}},
			to: StatusTodo,
		},
		{
			name: "self transition",
			task: Task{ID: 3, Status: StatusDoing, Changes: Ledger{
				{From: StatusTodo, To: StatusDoing, On: baseTime},
			}},
			to: StatusDoing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := tt.task
			task.Changes = tt.task.Changes.Clone()
			before := task
			before.Changes = task.Changes.Clone()

			err := Transition(&task, tt.to, baseTime.Add(2*time.Hour))
			if !errors.Is(err, ErrInvalidTransition) {
				t.Fatalf("expected ErrInvalidTransition, got %v", err)
			}
			var te *TransitionError
			if !errors.As(err, &te) || te.ID != tt.task.ID || te.From != tt.task.Status || te.To != tt.to {
				t.Errorf("unexpected TransitionError: %#v", err)
			}
			if !reflect.DeepEqual(task, before) {
				t.Errorf("task modified:\ngot  %+v\nwant %+v", task, before)
			}
		})
	}
}

func TestTransitionAppendsChange(t *testing.T) {
	task := Task{ID: 1, Status: StatusTodo}
	if err := Transition(&task, StatusDoing, baseTime); err != nil {
		t.Fatalf("Transition failed: %v", err)
	}
	if err := Transition(&task, StatusTodo, baseTime); err != nil {
		t.Fatalf("Transition back failed: %v", err)
	}
	want := Ledger{
		{From: StatusTodo, To: StatusDoing, On: baseTime},
		{From: StatusDoing, To: StatusTodo, On: baseTime},
	}
	if !reflect.DeepEqual(task.Changes, want) {
		t.Errorf("Changes: got %+v, want %+v", task.Changes, want)
	}
	if task.Status != task.Changes.Status() {
		t.Errorf("Status %s does not match ledger %s", task.Status, task.Changes.Status())
	}
}
