package core

import (
	"context"
	"time"

	"github.com/gerritlens/gerritlens/internal/contract"
	"github.com/gerritlens/gerritlens/schema"
)

// Recorder writes commit and review points into a point store.
type Recorder struct {
	store contract.PointStore
}

// NewRecorder creates a recorder on top of the given point store.
func NewRecorder(store contract.PointStore) *Recorder {
	return &Recorder{store: store}
}

// RecordEvents writes per-commit detail points plus one set of review
// aggregate points stamped at recordedAt. It returns the number of points
// written.
func (r *Recorder) RecordEvents(ctx context.Context, recordedAt time.Time, events []schema.CommitEvent) (int, error) {
	if len(events) == 0 {
		return 0, nil
	}

	points := BuildCommitPoints(events)
	points = append(points, BuildReviewPoints(recordedAt, events)...)

	if err := r.store.WritePoints(ctx, points); err != nil {
		return 0, err
	}
	return len(points), nil
}

// BuildCommitPoints converts events into commit_details points stamped at
// each event's creation time. submitted_on is only recorded for merged
// changes since it is meaningless otherwise.
func BuildCommitPoints(events []schema.CommitEvent) []schema.Point {
	var points []schema.Point
	for _, e := range events {
		points = append(points,
			schema.Point{
				Measurement: schema.CommitDetailsMeasurement,
				Field:       schema.StatusField,
				Time:        e.Created,
				Value:       schema.TextValue(string(e.Status)),
			},
			schema.Point{
				Measurement: schema.CommitDetailsMeasurement,
				Field:       schema.InsertionsField,
				Time:        e.Created,
				Value:       schema.Number(float64(e.Insertions)),
			},
			schema.Point{
				Measurement: schema.CommitDetailsMeasurement,
				Field:       schema.DeletionsField,
				Time:        e.Created,
				Value:       schema.Number(float64(e.Deletions)),
			},
		)
		if e.Merged() {
			points = append(points, schema.Point{
				Measurement: schema.CommitDetailsMeasurement,
				Field:       schema.SubmittedOnField,
				Time:        e.Created,
				Value:       schema.Timestamp(e.Submitted),
			})
		}
	}
	return points
}

// BuildReviewPoints reduces a batch of events into commits_review aggregate
// points stamped at recordedAt: merged count, average review hours across
// merged changes, and comments per change across the whole batch.
func BuildReviewPoints(recordedAt time.Time, events []schema.CommitEvent) []schema.Point {
	if len(events) == 0 {
		return nil
	}

	var merged int
	var reviewHours float64
	var comments int
	for _, e := range events {
		if e.Merged() {
			merged++
			reviewHours += e.ReviewTime().Hours()
		}
		comments += e.CommentCount
	}

	avgReviewHours := 0.0
	if merged > 0 {
		avgReviewHours = reviewHours / float64(merged)
	}
	commentsPerCommit := float64(comments) / float64(len(events))

	return []schema.Point{
		{
			Measurement: schema.CommitsReviewMeasurement,
			Field:       schema.MergedCommitsField,
			Time:        recordedAt,
			Value:       schema.Number(float64(merged)),
		},
		{
			Measurement: schema.CommitsReviewMeasurement,
			Field:       schema.AverageReviewTimeField,
			Time:        recordedAt,
			Value:       schema.Number(avgReviewHours),
		},
		{
			Measurement: schema.CommitsReviewMeasurement,
			Field:       schema.CommentsPerCommitField,
			Time:        recordedAt,
			Value:       schema.Number(commentsPerCommit),
		},
	}
}
