package nav

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsOnboarding(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{StudentOnboarding, true},
		{EmployerOnboarding, true},
		{EmployerOnboarding + "/", true},
		{StudentOnboarding + "?step=2", true},
		{StudentOnboarding + "/photo", true},
		{"/register/worker", false},
		{StudentDashboard, false},
		{Home, false},
		{"/register/worker/postal", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, IsOnboarding(tt.path))
		})
	}
}

func TestOnboardingTrack(t *testing.T) {
	assert.Equal(t, TrackStudent, OnboardingTrack(StudentOnboarding))
	assert.Equal(t, TrackEmployer, OnboardingTrack(EmployerOnboarding))
	assert.Equal(t, TrackEmployer, OnboardingTrack("/register/employer"))
	assert.Equal(t, TrackNone, OnboardingTrack("/register/other/post"))
	assert.Equal(t, TrackNone, OnboardingTrack(Home))
}

func TestClean(t *testing.T) {
	assert.Equal(t, "/", Clean(""))
	assert.Equal(t, "/", Clean("/"))
	assert.Equal(t, "/", Clean("///"))
	assert.Equal(t, "/login", Clean("login"))
	assert.Equal(t, "/student/dashboard", Clean("/student/dashboard/?tab=jobs#top"))
}

func TestWithQuery(t *testing.T) {
	assert.Equal(t, "/student/jobs", WithQuery("/student/jobs", nil))
	assert.Equal(t, "/student/jobs?page=2", WithQuery("/student/jobs", url.Values{"page": {"2"}}))
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "stay", Stay.String())
	assert.Equal(t, "redirect", Redirect.String())
	assert.Equal(t, Intent{Kind: Redirect, Target: Login}, RedirectTo(Login))
}
