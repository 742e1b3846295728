package viral

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/creator-cpm-sync/infrastructure/repository"
	"github.com/vfg2006/creator-cpm-sync/internal/domain"
	"github.com/vfg2006/creator-cpm-sync/pkg/metrics"
	"github.com/vfg2006/creator-cpm-sync/pkg/utils"
)

// MilestoneStep é o intervalo entre marcos virais
const MilestoneStep int64 = 10_000

type Detector interface {
	CheckAndUpdate(ctx context.Context, postID string, currentViews int64) (bool, error)
}

type Service struct {
	postRepository repository.PostRepository
	clock          utils.Clock
}

func NewService(postRepo repository.PostRepository, clock utils.Clock) Detector {
	return &Service{
		postRepository: postRepo,
		clock:          clock,
	}
}

// Milestone arredonda para baixo no múltiplo de 10K
func Milestone(views int64) int64 {
	if views < 0 {
		return 0
	}
	return (views / MilestoneStep) * MilestoneStep
}

func Message(milestone int64) string {
	return fmt.Sprintf("Seu post passou de %s visualizações! 🚀", utils.FormatViews(milestone))
}

// CheckAndUpdate grava o alerta só quando um marco novo e maior foi cruzado. Repetir com as mesmas views não altera nada.
func (s *Service) CheckAndUpdate(ctx context.Context, postID string, currentViews int64) (bool, error) {
	milestone := Milestone(currentViews)
	if milestone < MilestoneStep {
		return false, nil
	}

	current, err := s.postRepository.GetViralAlert(ctx, postID)
	if err != nil {
		return false, fmt.Errorf("erro ao buscar alerta viral do post %s: %w", postID, err)
	}

	if current != nil && milestone <= current.MilestoneViews {
		return false, nil
	}

	alert := &domain.ViralAlert{
		Message:        Message(milestone),
		MilestoneViews: milestone,
		CreatedAt:      s.clock.Now(),
		Acknowledged:   false,
	}

	updated, err := s.postRepository.UpdateViralAlert(ctx, postID, alert)
	if err != nil {
		return false, fmt.Errorf("erro ao atualizar alerta viral do post %s: %w", postID, err)
	}

	if !updated {
		// Outra execução gravou um marco igual ou maior entre a leitura e o UPDATE
		logrus.WithFields(logrus.Fields{
			"post_id":   postID,
			"milestone": milestone,
		}).Debug("viral: marco já registrado por outra execução")
		return false, nil
	}

	metrics.ViralAlerts.Inc()
	logrus.WithFields(logrus.Fields{
		"post_id":       postID,
		"milestone":     milestone,
		"current_views": currentViews,
	}).Info("viral: novo marco de visualizações registrado")

	return true, nil
}
