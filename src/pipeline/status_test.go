package pipeline

import "testing"

func TestAggregate(t *testing.T) {
	cases := []struct {
		name    string
		results []Result
		want    Status
	}{
		{
			name: "all succeed",
			results: []Result{
				{Job: "lint", Advisory: true, Status: StatusSucceeded},
				{Job: "test", Status: StatusSucceeded},
			},
			want: StatusSucceeded,
		},
		{
			name: "advisory failure never gates",
			results: []Result{
				{Job: "lint", Advisory: true, Status: StatusFailed},
				{Job: "format", Advisory: true, Status: StatusFailed},
				{Job: "typecheck", Advisory: true, Status: StatusFailed},
				{Job: "test", Status: StatusSucceeded},
				{Job: "integration", Status: StatusSucceeded},
			},
			want: StatusSucceeded,
		},
		{
			name: "single blocking failure fails the run",
			results: []Result{
				{Job: "lint", Advisory: true, Status: StatusSucceeded},
				{Job: "test", Cell: "python 3.10", Status: StatusSucceeded},
				{Job: "test", Cell: "python 3.11", Status: StatusFailed},
				{Job: "test", Cell: "python 3.12", Status: StatusSucceeded},
			},
			want: StatusFailed,
		},
		{
			name: "blocking integration failure fails the run",
			results: []Result{
				{Job: "test", Status: StatusSucceeded},
				{Job: "integration", Cell: "version", Status: StatusFailed},
				{Job: "integration", Cell: "help", Status: StatusSucceeded},
			},
			want: StatusFailed,
		},
		{
			name:    "empty run succeeds",
			results: nil,
			want:    StatusSucceeded,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Aggregate(c.results); got != c.want {
				t.Errorf("Aggregate = %s, want %s", got, c.want)
			}
		})
	}
}

// Flipping any advisory result must never change the aggregate status.
func TestAggregateAdvisoryIndependence(t *testing.T) {
	base := []Result{
		{Job: "lint", Advisory: true, Status: StatusSucceeded},
		{Job: "secrets", Advisory: true, Status: StatusSucceeded},
		{Job: "test", Status: StatusSucceeded},
	}

	for i := range base {
		if !base[i].Advisory {
			continue
		}
		flipped := make([]Result, len(base))
		copy(flipped, base)
		flipped[i].Status = StatusFailed

		if Aggregate(flipped) != Aggregate(base) {
			t.Errorf("flipping advisory %s changed aggregate status", base[i].Job)
		}
	}
}

func TestSummarize(t *testing.T) {
	results := []Result{
		{Job: "test", Cell: "python 3.10", Status: StatusSucceeded},
		{Job: "test", Cell: "python 3.11", Status: StatusFailed},
		{Job: "lint", Advisory: true, Status: StatusFailed},
	}

	summaries := Summarize(results)
	if len(summaries) != 2 {
		t.Fatalf("got %d summaries, want 2", len(summaries))
	}

	test := summaries[0]
	if test.Job != "test" || test.Units != 2 || test.Failed != 1 || test.Status != StatusFailed {
		t.Errorf("test summary = %+v", test)
	}
	lint := summaries[1]
	if lint.Job != "lint" || !lint.Advisory || lint.Status != StatusFailed {
		t.Errorf("lint summary = %+v", lint)
	}
}

func TestStatusString(t *testing.T) {
	if StatusPending.String() != "pending" || StatusFailed.String() != "failed" {
		t.Error("status strings wrong")
	}
	if Status(42).String() != "status(42)" {
		t.Error("unknown status formatting wrong")
	}
}
