package service

import (
	"strings"

	"studyhive_backend/internal/model"
	"studyhive_backend/internal/repository"
	"studyhive_backend/internal/util"
)

// Search result buckets. "all" fans out to every type.
const (
	SearchAll           = "all"
	SearchCourses       = "courses"
	SearchPastQuestions = "past-questions"
	SearchOfficialNotes = "official-notes"
	SearchNotes         = "notes"
	SearchQuizzes       = "quizzes"
)

const searchBucketLimit = 10

type SearchResults struct {
	Courses       []model.Course        `json:"courses,omitempty"`
	PastQuestions []model.PastQuestion  `json:"pastQuestions,omitempty"`
	OfficialNotes []model.OfficialNote  `json:"officialNotes,omitempty"`
	Notes         []model.CommunityNote `json:"notes,omitempty"`
	Quizzes       []model.Quiz          `json:"quizzes,omitempty"`
}

type SearchService struct {
	courses       *repository.CourseRepository
	pastQuestions *repository.PastQuestionRepository
	officialNotes *repository.OfficialNoteRepository
	notes         *repository.CommunityNoteRepository
	quizzes       *repository.QuizRepository
}

func NewSearchService(
	courses *repository.CourseRepository,
	pastQuestions *repository.PastQuestionRepository,
	officialNotes *repository.OfficialNoteRepository,
	notes *repository.CommunityNoteRepository,
	quizzes *repository.QuizRepository,
) *SearchService {
	return &SearchService{
		courses:       courses,
		pastQuestions: pastQuestions,
		officialNotes: officialNotes,
		notes:         notes,
		quizzes:       quizzes,
	}
}

// Search runs a substring match across the requested content types.
func (s *SearchService) Search(q, scope string) (*SearchResults, error) {
	q = strings.TrimSpace(q)
	if len(q) < 2 {
		return nil, util.BadRequest("Search query must be at least 2 characters")
	}
	if scope == "" {
		scope = SearchAll
	}
	switch scope {
	case SearchAll, SearchCourses, SearchPastQuestions, SearchOfficialNotes, SearchNotes, SearchQuizzes:
	default:
		return nil, util.BadRequest("Unknown search type")
	}

	results := &SearchResults{}
	var err error

	if scope == SearchAll || scope == SearchCourses {
		results.Courses, err = s.courses.Search(q, searchBucketLimit)
		if err != nil {
			return nil, err
		}
	}
	if scope == SearchAll || scope == SearchPastQuestions {
		results.PastQuestions, err = s.pastQuestions.Search(q, searchBucketLimit)
		if err != nil {
			return nil, err
		}
	}
	if scope == SearchAll || scope == SearchOfficialNotes {
		results.OfficialNotes, err = s.officialNotes.Search(q, searchBucketLimit)
		if err != nil {
			return nil, err
		}
	}
	if scope == SearchAll || scope == SearchNotes {
		results.Notes, err = s.notes.Search(q, searchBucketLimit)
		if err != nil {
			return nil, err
		}
	}
	if scope == SearchAll || scope == SearchQuizzes {
		results.Quizzes, err = s.quizzes.Search(q, searchBucketLimit)
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
