package service

import (
	"context"
	"fmt"
	"sort"

	"gorm.io/gorm"

	"github.com/artichane-debug/schiedule-1/internal/model"
)

// ── Mock CourseMeetingRepository ──

type mockCourseMeetingRepo struct {
	meetings map[string]*model.CourseMeeting
	seq      int
	listErr  error
}

func newMockCourseMeetingRepo() *mockCourseMeetingRepo {
	return &mockCourseMeetingRepo{meetings: make(map[string]*model.CourseMeeting)}
}

func (m *mockCourseMeetingRepo) List(_ context.Context) ([]model.CourseMeeting, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var result []model.CourseMeeting
	for _, mt := range m.meetings {
		result = append(result, *mt)
	}
	// 与真实仓储一致：按星期、开始时间排序
	sort.Slice(result, func(i, j int) bool {
		if result[i].DayOfWeek != result[j].DayOfWeek {
			return result[i].DayOfWeek < result[j].DayOfWeek
		}
		return result[i].StartTime < result[j].StartTime
	})
	return result, nil
}

func (m *mockCourseMeetingRepo) GetByID(_ context.Context, id string) (*model.CourseMeeting, error) {
	if mt, ok := m.meetings[id]; ok {
		return mt, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCourseMeetingRepo) Create(_ context.Context, meeting *model.CourseMeeting) error {
	if meeting.MeetingID == "" {
		m.seq++
		meeting.MeetingID = fmt.Sprintf("mtg-%03d", m.seq)
	}
	m.meetings[meeting.MeetingID] = meeting
	return nil
}

func (m *mockCourseMeetingRepo) BatchCreate(_ context.Context, meetings []model.CourseMeeting) error {
	for i := range meetings {
		if err := m.Create(context.Background(), &meetings[i]); err != nil {
			return err
		}
	}
	return nil
}

func (m *mockCourseMeetingRepo) Update(_ context.Context, meeting *model.CourseMeeting) error {
	m.meetings[meeting.MeetingID] = meeting
	return nil
}

func (m *mockCourseMeetingRepo) Delete(_ context.Context, id string) error {
	delete(m.meetings, id)
	return nil
}

// ── Mock PreferenceRepository ──

type mockPreferenceRepo struct {
	pref *model.Preference
}

func newMockPreferenceRepo() *mockPreferenceRepo {
	return &mockPreferenceRepo{
		pref: &model.Preference{
			Singleton:           true,
			TimeFormat:          "12",
			ShowWeekends:        true,
			DefaultSemester:     "odd",
			DefaultAcademicYear: "2025",
		},
	}
}

func (m *mockPreferenceRepo) Get(_ context.Context) (*model.Preference, error) {
	if m.pref == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return m.pref, nil
}

func (m *mockPreferenceRepo) Update(_ context.Context, pref *model.Preference) error {
	m.pref = pref
	return nil
}
