// ABOUTME: Render tests for the role-scoped dashboard
// ABOUTME: Checks each role's overview shows its data and loading placeholder

package dashboard

import (
	"strings"
	"testing"

	"github.com/trackdemic/trackdemic-cli/internal/client"
)

func TestStudentDashboardLoading(t *testing.T) {
	d := New(client.RoleStudent, 80, 24)
	if !strings.Contains(d.View(), "Loading") {
		t.Error("expected a loading placeholder before data arrives")
	}
}

func TestStudentDashboardRendersProgress(t *testing.T) {
	d := New(client.RoleStudent, 80, 24)
	d.SetStudent(&StudentData{
		Enrollments: []client.Enrollment{
			{Course: client.Course{Title: "Intro to Go"}, ProgressPercentage: 40},
		},
		Performance: &client.Performance{OverallScore: 72.4, RiskLevel: "low"},
		Attempts:    []client.QuizAttempt{{ID: 1}, {ID: 2}},
	})

	view := d.View()
	for _, want := range []string{"My Learning", "Intro to Go", "40%", "72%", "LOW"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected %q in student view", want)
		}
	}
}

func TestStudentDashboardEmptyEnrollments(t *testing.T) {
	d := New(client.RoleStudent, 80, 24)
	d.SetStudent(&StudentData{})
	if !strings.Contains(d.View(), "not enrolled") {
		t.Error("expected the empty-enrollments hint")
	}
}

func TestFacultyDashboardRendersCourses(t *testing.T) {
	d := New(client.RoleFaculty, 80, 24)
	d.SetFaculty(&FacultyData{
		Courses: []client.Course{
			{Title: "Databases", EnrolledCount: 31, IsActive: true},
			{Title: "Old Course", EnrolledCount: 2, IsActive: false},
		},
		Quizzes: []client.Quiz{{ID: 1}},
	})

	view := d.View()
	for _, want := range []string{"Teaching Overview", "Databases", "31", "inactive"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected %q in faculty view", want)
		}
	}
}

func TestAdminDashboardRendersStats(t *testing.T) {
	d := New(client.RoleAdmin, 80, 24)
	d.SetAdmin(&AdminData{
		Stats: &client.DashboardStats{
			Users:       client.UserStats{Total: 120, Students: 100, Faculty: 15, Admins: 5, ActiveMonth: 60},
			Courses:     client.CourseStats{Total: 22, Active: 20, Inactive: 2},
			Enrollments: 310,
			QuizCount:   48,
		},
	})

	view := d.View()
	for _, want := range []string{"Platform Overview", "120", "310", "20 active"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected %q in admin view", want)
		}
	}
}
