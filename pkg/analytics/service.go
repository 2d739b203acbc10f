package analytics

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/orgware/staffd/pkg/repository"
)

// Bucket labels for team size distribution.
const (
	SizeEmpty  = "Empty"
	SizeSmall  = "Small (1-3)"
	SizeMedium = "Medium (4-7)"
	SizeLarge  = "Large (8+)"
)

// SizeBucket is a count of teams falling into one size range.
type SizeBucket struct {
	Size  string `json:"size"`
	Teams int    `json:"team_count"`
}

// Summary is the derived statistics for one organisation. It is
// recomputed from the store on every request.
type Summary struct {
	TotalEmployees      int                           `json:"totalEmployees"`
	TotalTeams          int                           `json:"totalTeams"`
	UnassignedEmployees int                           `json:"unassignedEmployees"`
	EmployeesPerTeam    []*repository.TeamMemberCount `json:"employeesPerTeam"`
	TeamDistribution    []SizeBucket                  `json:"teamDistribution"`
}

// Service derives summary statistics from the registries.
type Service struct {
	employees *repository.EmployeesRepository
	teams     *repository.TeamsRepository
}

// NewService creates a new analytics service.
func NewService(employees *repository.EmployeesRepository, teams *repository.TeamsRepository) *Service {
	return &Service{employees: employees, teams: teams}
}

// Summarize computes the full summary for an organisation.
func (s *Service) Summarize(ctx context.Context, orgID uuid.UUID) (*Summary, error) {
	totalEmployees, err := s.employees.CountByOrg(ctx, orgID)
	if err != nil {
		return nil, err
	}

	totalTeams, err := s.teams.CountByOrg(ctx, orgID)
	if err != nil {
		return nil, err
	}

	unassigned, err := s.employees.CountUnassigned(ctx, orgID)
	if err != nil {
		return nil, err
	}

	perTeam, err := s.teams.MemberCounts(ctx, orgID)
	if err != nil {
		return nil, err
	}
	if perTeam == nil {
		perTeam = []*repository.TeamMemberCount{}
	}

	return &Summary{
		TotalEmployees:      totalEmployees,
		TotalTeams:          totalTeams,
		UnassignedEmployees: unassigned,
		EmployeesPerTeam:    perTeam,
		TeamDistribution:    Distribution(perTeam),
	}, nil
}

// BucketFor returns the size bucket label for a membership count.
func BucketFor(count int) string {
	switch {
	case count == 0:
		return SizeEmpty
	case count <= 3:
		return SizeSmall
	case count <= 7:
		return SizeMedium
	default:
		return SizeLarge
	}
}

// Distribution buckets teams by membership count. Only buckets with at
// least one team are reported, ordered by label; the bucket counts always
// sum to the number of teams.
func Distribution(counts []*repository.TeamMemberCount) []SizeBucket {
	byLabel := make(map[string]int)
	for _, c := range counts {
		byLabel[BucketFor(c.Count)]++
	}

	buckets := make([]SizeBucket, 0, len(byLabel))
	for label, n := range byLabel {
		buckets = append(buckets, SizeBucket{Size: label, Teams: n})
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Size < buckets[j].Size })

	return buckets
}
