package analytics

import (
	"sort"
	"testing"

	"github.com/google/uuid"
	"github.com/orgware/staffd/pkg/repository"
)

func TestBucketFor(t *testing.T) {
	tests := []struct {
		count int
		want  string
	}{
		{0, SizeEmpty},
		{1, SizeSmall},
		{3, SizeSmall},
		{4, SizeMedium},
		{7, SizeMedium},
		{8, SizeLarge},
		{42, SizeLarge},
	}

	for _, tt := range tests {
		if got := BucketFor(tt.count); got != tt.want {
			t.Errorf("BucketFor(%d) = %q, want %q", tt.count, got, tt.want)
		}
	}
}

func counts(ns ...int) []*repository.TeamMemberCount {
	out := make([]*repository.TeamMemberCount, 0, len(ns))
	for _, n := range ns {
		out = append(out, &repository.TeamMemberCount{TeamID: uuid.New(), Name: "team", Count: n})
	}
	return out
}

func TestDistribution_SumsToTotalTeams(t *testing.T) {
	in := counts(0, 0, 1, 2, 3, 5, 6, 9, 12)

	buckets := Distribution(in)

	total := 0
	for _, b := range buckets {
		total += b.Teams
	}
	if total != len(in) {
		t.Errorf("bucket counts sum = %d, want %d", total, len(in))
	}
}

func TestDistribution_Buckets(t *testing.T) {
	in := counts(0, 2, 2, 5, 8)

	buckets := Distribution(in)

	want := map[string]int{
		SizeEmpty:  1,
		SizeSmall:  2,
		SizeMedium: 1,
		SizeLarge:  1,
	}
	if len(buckets) != len(want) {
		t.Fatalf("len(buckets) = %d, want %d", len(buckets), len(want))
	}
	for _, b := range buckets {
		if want[b.Size] != b.Teams {
			t.Errorf("bucket %q = %d teams, want %d", b.Size, b.Teams, want[b.Size])
		}
	}
}

func TestDistribution_OrderedByLabel(t *testing.T) {
	buckets := Distribution(counts(0, 1, 5, 10))

	labels := make([]string, len(buckets))
	for i, b := range buckets {
		labels[i] = b.Size
	}
	if !sort.StringsAreSorted(labels) {
		t.Errorf("bucket labels not sorted: %v", labels)
	}
}

func TestDistribution_OmitsEmptyBuckets(t *testing.T) {
	buckets := Distribution(counts(1, 2))

	if len(buckets) != 1 {
		t.Fatalf("len(buckets) = %d, want 1", len(buckets))
	}
	if buckets[0].Size != SizeSmall || buckets[0].Teams != 2 {
		t.Errorf("bucket = %+v, want {%s 2}", buckets[0], SizeSmall)
	}
}

func TestDistribution_NoTeams(t *testing.T) {
	if got := Distribution(nil); len(got) != 0 {
		t.Errorf("Distribution(nil) = %v, want empty", got)
	}
}
