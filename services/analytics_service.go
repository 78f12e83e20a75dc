package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"backend/models"
	"backend/scoring"
	"backend/transform"

	"gorm.io/gorm"
)

type AnalyticsService struct{ db *gorm.DB }

func NewAnalyticsService(db *gorm.DB) *AnalyticsService { return &AnalyticsService{db: db} }

var ErrNotEnoughData = errors.New("not enough data")

// DashboardSummary is the headline payload for the dashboard: one summary
// metric per tracked type plus its latest trend.
type DashboardSummary struct {
	Range struct {
		From string `json:"from"`
		To   string `json:"to"`
	} `json:"range"`
	Metrics []SummaryWithTrend `json:"metrics"`
	// HealthScore averages the per-metric scores under the user's preferred
	// scoring system; 0-100.
	HealthScore float64 `json:"health_score"`
}

type SummaryWithTrend struct {
	transform.SummaryMetric
	Score float64                `json:"score"`
	Color string                 `json:"color"`
	Trend *transform.TrendResult `json:"trend,omitempty"`
}

func (s *AnalyticsService) loadWindow(ctx context.Context, userID uint, from, to time.Time) ([]models.HealthRecord, []models.HealthGoal, error) {
	var records []models.HealthRecord
	q := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if !from.IsZero() {
		q = q.Where("recorded_at >= ?", dayStart(from))
	}
	if !to.IsZero() {
		q = q.Where("recorded_at <= ?", dayEnd(to))
	}
	if err := q.Order("recorded_at ASC").Find(&records).Error; err != nil {
		return nil, nil, err
	}

	var goals []models.HealthGoal
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, models.GoalActive).
		Find(&goals).Error; err != nil {
		return nil, nil, err
	}
	return records, goals, nil
}

func (s *AnalyticsService) scoringSystem(ctx context.Context, userID uint) scoring.System {
	var pref models.UserPreference
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&pref).Error; err != nil {
		return scoring.SystemPercentage
	}
	switch scoring.System(pref.ScoringSystem) {
	case scoring.SystemZScore:
		return scoring.SystemZScore
	case scoring.SystemCustom:
		return scoring.SystemCustom
	default:
		return scoring.SystemPercentage
	}
}

// Summary builds the dashboard headline for a date window. Transformer
// validation errors surface unchanged so controllers can map them to 400.
func (s *AnalyticsService) Summary(ctx context.Context, userID uint, from, to time.Time) (*DashboardSummary, error) {
	records, goals, err := s.loadWindow(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	metrics, err := transform.ToSummaryMetrics(records, goals)
	if err != nil {
		return nil, err
	}

	system := s.scoringSystem(ctx, userID)
	profile := ScoringProfileFor(userID)

	// previous value per type for trend computation
	prev := map[string]float64{}
	byType := map[string][]models.HealthRecord{}
	for _, r := range records {
		byType[r.Type] = append(byType[r.Type], r)
	}
	for typ, rs := range byType {
		if len(rs) >= 2 {
			prev[typ] = rs[len(rs)-2].Value // records come back in ascending order
		}
	}

	out := &DashboardSummary{}
	if !from.IsZero() {
		out.Range.From = from.Format("2006-01-02")
	}
	if !to.IsZero() {
		out.Range.To = to.Format("2006-01-02")
	}

	var scoreSum float64
	for _, m := range metrics {
		score := scoring.ScoreMetric(m.Type, m.CurrentValue, system, profile, nil)
		entry := SummaryWithTrend{
			SummaryMetric: m,
			Score:         math.Round(score*100) / 100,
			Color:         scoring.ScoreColor(score),
		}
		if p, ok := prev[m.Type]; ok {
			if tr, err := transform.Trend(m.CurrentValue, p); err == nil {
				entry.Trend = &tr
			}
		}
		scoreSum += score
		out.Metrics = append(out.Metrics, entry)
	}
	if len(out.Metrics) > 0 {
		out.HealthScore = math.Round(scoreSum/float64(len(out.Metrics))*100) / 100
	}
	return out, nil
}

// Radar returns the radar-chart payload under the user's preferred system.
func (s *AnalyticsService) Radar(ctx context.Context, userID uint, from, to time.Time) ([]transform.RadarChartMetric, error) {
	records, goals, err := s.loadWindow(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	return transform.ToRadarData(records, goals, s.scoringSystem(ctx, userID))
}

// Predictions forecasts a single metric horizonDays into the future.
func (s *AnalyticsService) Predictions(ctx context.Context, userID uint, metric string, algorithm transform.Algorithm, horizonDays int) ([]transform.PredictedPoint, error) {
	if metric == "" {
		return nil, fmt.Errorf("%w: metric type is required", ErrInvalidRecord)
	}
	if horizonDays <= 0 || horizonDays > 90 {
		return nil, fmt.Errorf("%w: horizon must be 1-90 days", ErrInvalidRecord)
	}

	var records []models.HealthRecord
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND type = ?", userID, metric).
		Order("recorded_at ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}

	points := make([]transform.TrendPoint, len(records))
	for i, r := range records {
		points[i] = transform.TrendPoint{Date: r.RecordedAt, Value: r.Value, Unit: r.Unit}
	}
	return transform.ToPredictiveData(points, algorithm, horizonDays), nil
}

// TrendFor compares the two most recent observations of a metric.
func (s *AnalyticsService) TrendFor(ctx context.Context, userID uint, metric string) (*transform.TrendResult, error) {
	var records []models.HealthRecord
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND type = ?", userID, metric).
		Order("recorded_at DESC").
		Limit(2).
		Find(&records).Error; err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, ErrNotEnoughData
	}

	tr, err := transform.Trend(records[0].Value, records[1].Value)
	if err != nil {
		return nil, err
	}
	return &tr, nil
}

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func dayEnd(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
