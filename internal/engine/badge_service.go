package engine

import (
	"fmt"
	"time"

	"github.com/remardo/nutrios/internal/models"
)

type BadgeMealReader interface {
	ListMealsForClient(clientID uint) ([]models.Meal, error)
}

type TargetsReader interface {
	FindTargetsForClient(clientID uint) (models.ClientTargets, bool, error)
}

type BadgeAwardStore interface {
	ListAwardsForClient(clientID uint) ([]models.ClientBadgeAward, error)
	Create(award *models.ClientBadgeAward) error
	Save(award *models.ClientBadgeAward) error
}

// BadgeStatus is the externally visible evaluation of one badge.
type BadgeStatus struct {
	Code          string             `json:"code"`
	Title         string             `json:"title"`
	Description   string             `json:"description"`
	Earned        bool               `json:"earned"`
	Progress      float64            `json:"progress"`
	Meta          map[string]float64 `json:"meta"`
	LatestAwardAt *time.Time         `json:"latest_award_at,omitempty"`
}

type BadgeService struct {
	meals    BadgeMealReader
	targets  TargetsReader
	awards   BadgeAwardStore
	location *time.Location
	now      func() time.Time
}

func NewBadgeService(meals BadgeMealReader, targets TargetsReader, awards BadgeAwardStore, location *time.Location) *BadgeService {
	return &BadgeService{
		meals:    meals,
		targets:  targets,
		awards:   awards,
		location: location,
		now:      time.Now,
	}
}

func (service *BadgeService) buildContext(clientID uint) (BadgeContext, error) {
	meals, err := service.meals.ListMealsForClient(clientID)
	if err != nil {
		return BadgeContext{}, fmt.Errorf("load meals for client %d: %w", clientID, err)
	}

	targets := DefaultTargets()
	stored, found, err := service.targets.FindTargetsForClient(clientID)
	if err != nil {
		return BadgeContext{}, fmt.Errorf("load targets for client %d: %w", clientID, err)
	}
	if found {
		targets = TargetsFromModel(stored)
	}

	return BuildBadgeContext(meals, targets, service.location), nil
}

// EvaluateBadges runs every registered badge against the client's history.
// Pure with respect to storage: nothing is written.
func (service *BadgeService) EvaluateBadges(clientID uint) ([]BadgeStatus, error) {
	ctx, err := service.buildContext(clientID)
	if err != nil {
		return nil, err
	}
	statuses := make([]BadgeStatus, 0, len(badgeRegistry))
	for _, badge := range badgeRegistry {
		evaluation := badge.Evaluate(&ctx)
		meta := evaluation.Meta
		if meta == nil {
			meta = map[string]float64{}
		}
		statuses = append(statuses, BadgeStatus{
			Code:        badge.Code,
			Title:       badge.Title,
			Description: badge.Description,
			Earned:      evaluation.Earned,
			Progress:    clamp01(evaluation.Progress),
			Meta:        meta,
		})
	}
	return statuses, nil
}

// RefreshClientBadges evaluates all badges and syncs award rows. Awards
// are created only for earned badges, exactly one row per (client, badge);
// re-running on unchanged data changes nothing.
func (service *BadgeService) RefreshClientBadges(clientID uint) ([]BadgeStatus, error) {
	statuses, err := service.EvaluateBadges(clientID)
	if err != nil {
		return nil, err
	}

	existing, err := service.awards.ListAwardsForClient(clientID)
	if err != nil {
		return nil, fmt.Errorf("load badge awards for client %d: %w", clientID, err)
	}
	byCode := make(map[string]*models.ClientBadgeAward, len(existing))
	for index := range existing {
		byCode[existing[index].BadgeCode] = &existing[index]
	}

	for index := range statuses {
		status := &statuses[index]
		award := byCode[status.Code]
		if award == nil {
			if !status.Earned {
				continue
			}
			now := service.now()
			created := models.ClientBadgeAward{
				ClientID:      clientID,
				BadgeCode:     status.Code,
				Earned:        true,
				Progress:      status.Progress,
				Meta:          metaToJSONMap(status.Meta),
				FirstEarnedAt: &now,
				LatestAwardAt: &now,
			}
			if err := service.awards.Create(&created); err != nil {
				return nil, fmt.Errorf("create badge award %s: %w", status.Code, err)
			}
			status.LatestAwardAt = created.LatestAwardAt
			continue
		}

		if status.Earned && !award.Earned {
			now := service.now()
			award.LatestAwardAt = &now
			if award.FirstEarnedAt == nil {
				award.FirstEarnedAt = &now
			}
		}
		award.Earned = status.Earned
		award.Progress = status.Progress
		award.Meta = metaToJSONMap(status.Meta)
		if err := service.awards.Save(award); err != nil {
			return nil, fmt.Errorf("update badge award %s: %w", status.Code, err)
		}
		status.LatestAwardAt = award.LatestAwardAt
	}
	return statuses, nil
}

func metaToJSONMap(meta map[string]float64) map[string]any {
	converted := make(map[string]any, len(meta))
	for key, value := range meta {
		converted[key] = value
	}
	return converted
}
