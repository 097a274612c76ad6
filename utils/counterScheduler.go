package utils

import (
	"log"
	"time"

	"learnify/config"
	"learnify/database"
	courseModels "learnify/models/course"
	discussionModels "learnify/models/discussion"

	"github.com/robfig/cron/v3"
)

// logReconciler logs reconciler events with timestamp
func logReconciler(message string) {
	log.Printf("[COUNTER-RECONCILER %s] %s", time.Now().Format(time.RFC3339), message)
}

// reconcileCourseCounters recomputes total_modules and enrolled_count for
// every live course from the source tables
func reconcileCourseCounters() {
	db := database.Database.Db

	var courses []courseModels.Course
	if err := db.Where("is_deleted = ?", false).Find(&courses).Error; err != nil {
		logReconciler("Error fetching courses: " + err.Error())
		return
	}

	for _, course := range courses {
		var moduleCount, enrollmentCount int64
		db.Model(&courseModels.Module{}).
			Where("course_id = ? AND is_deleted = ?", course.ID, false).
			Count(&moduleCount)
		db.Model(&courseModels.Enrollment{}).
			Where("course_id = ? AND is_deleted = ?", course.ID, false).
			Count(&enrollmentCount)

		if course.TotalModules != int(moduleCount) || course.EnrolledCount != int(enrollmentCount) {
			db.Model(&course).Updates(map[string]interface{}{
				"total_modules":  moduleCount,
				"enrolled_count": enrollmentCount,
			})
		}
	}
}

// reconcileDiscussionCounters recomputes answer counts and vote tallies
// from the reply table and the voter id sets
func reconcileDiscussionCounters() {
	db := database.Database.Db

	var discussions []discussionModels.Discussion
	if err := db.Where("is_deleted = ?", false).Find(&discussions).Error; err != nil {
		logReconciler("Error fetching discussions: " + err.Error())
		return
	}

	for _, d := range discussions {
		var replyCount int64
		db.Model(&discussionModels.DiscussionReply{}).
			Where("discussion_id = ? AND is_deleted = ?", d.ID, false).
			Count(&replyCount)

		votes := len(d.Upvoters) - len(d.Downvoters)
		if d.AnswerCount != int(replyCount) || d.Votes != votes {
			db.Model(&d).Updates(map[string]interface{}{
				"answer_count": replyCount,
				"votes":        votes,
			})
		}
	}

	var replies []discussionModels.DiscussionReply
	if err := db.Where("is_deleted = ?", false).Find(&replies).Error; err != nil {
		logReconciler("Error fetching replies: " + err.Error())
		return
	}

	for _, r := range replies {
		votes := len(r.Upvoters) - len(r.Downvoters)
		if r.Votes != votes {
			db.Model(&r).Update("votes", votes)
		}
	}
}

func runCounterReconciliation() {
	logReconciler("Starting counter reconciliation")
	reconcileCourseCounters()
	reconcileDiscussionCounters()
	logReconciler("Counter reconciliation finished")
}

// StartCounterReconciler schedules the denormalized-counter reconciliation
// job. It only runs when COUNTER_RECONCILE_CRON is set.
func StartCounterReconciler() {
	spec := config.AppConfig.CounterReconcileCron
	if spec == "" {
		return
	}

	c := cron.New()
	if _, err := c.AddFunc(spec, runCounterReconciliation); err != nil {
		logReconciler("Invalid cron spec: " + err.Error())
		return
	}
	c.Start()
	logReconciler("Counter reconciler scheduled: " + spec)
}
