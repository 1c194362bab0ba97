package memory

import (
	"context"
	"sync"

	"github.com/shiftclock/attendance-backend-go/internal/domain/organization"
)

type OrganizationRepository struct {
	mu       sync.RWMutex
	policies map[string]organization.TimePolicy
	members  map[string]organization.Member // user|org
}

func NewOrganizationRepository() *OrganizationRepository {
	return &OrganizationRepository{
		policies: make(map[string]organization.TimePolicy),
		members:  make(map[string]organization.Member),
	}
}

func (r *OrganizationRepository) SeedPolicy(policy organization.TimePolicy) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.policies[policy.OrganizationID] = policy
}

func (r *OrganizationRepository) SeedMember(member organization.Member) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.members[member.UserID+"|"+member.OrganizationID] = member
}

// GetTimePolicy implements organization.OrganizationRepository.
func (r *OrganizationRepository) GetTimePolicy(ctx context.Context, organizationID string) (organization.TimePolicy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	policy, exists := r.policies[organizationID]
	if !exists {
		return organization.TimePolicy{}, organization.ErrPolicyNotConfigured
	}
	return policy, nil
}

// GetMember implements organization.OrganizationRepository.
func (r *OrganizationRepository) GetMember(ctx context.Context, userID string, organizationID string) (organization.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	member, exists := r.members[userID+"|"+organizationID]
	if !exists {
		return organization.Member{}, organization.ErrNotMember
	}
	return member, nil
}
