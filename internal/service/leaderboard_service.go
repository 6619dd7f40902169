package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"studyhive_backend/internal/repository"
	"studyhive_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const leaderboardCacheTTL = 5 * time.Minute

// LeaderboardInvalidator is the slice of LeaderboardService that
// reputation-moving writes depend on, so those services can drop stale
// cached rankings without seeing the rest of the leaderboard API.
type LeaderboardInvalidator interface {
	Invalidate(ctx context.Context)
}

type LeaderboardEntry struct {
	Rank       int    `json:"rank"`
	UserID     uint   `json:"userId"`
	Name       string `json:"name"`
	Department string `json:"department"`
	Level      string `json:"level,omitempty"`
	Reputation int    `json:"reputation"`
}

type MyRank struct {
	Rank       int64 `json:"rank"`
	Reputation int   `json:"reputation"`
}

type LeaderboardService struct {
	users *repository.UserRepository
	cache *redis.Client
}

func NewLeaderboardService(users *repository.UserRepository, cache *redis.Client) *LeaderboardService {
	return &LeaderboardService{users: users, cache: cache}
}

// Top returns the highest-reputation users, served from a short-lived cache.
// A cache miss or a dead Redis falls through to the database.
func (s *LeaderboardService) Top(ctx context.Context, department string, levelID uint, limit int) ([]LeaderboardEntry, error) {
	if limit < 1 || limit > 100 {
		limit = 10
	}

	key := fmt.Sprintf("leaderboard:%s:%d:%d", department, levelID, limit)

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, key).Result()
		if err == nil {
			var entries []LeaderboardEntry
			if json.Unmarshal([]byte(cached), &entries) == nil {
				return entries, nil
			}
		} else if err != redis.Nil {
			logger.Log.Warn("Leaderboard cache read failed", zap.Error(err))
		}
	}

	users, err := s.users.Leaderboard(department, levelID, limit)
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(users))
	for i, u := range users {
		entry := LeaderboardEntry{
			Rank:       i + 1,
			UserID:     u.ID,
			Name:       u.Name,
			Department: u.Department,
			Reputation: u.Reputation,
		}
		if u.Level != nil {
			entry.Level = u.Level.Name
		}
		entries = append(entries, entry)
	}

	if s.cache != nil {
		if payload, err := json.Marshal(entries); err == nil {
			if err := s.cache.Set(ctx, key, payload, leaderboardCacheTTL).Err(); err != nil {
				logger.Log.Warn("Leaderboard cache write failed", zap.Error(err))
			}
		}
	}
	return entries, nil
}

type ContributorEntry struct {
	Rank        int    `json:"rank"`
	UserID      uint   `json:"userId"`
	Name        string `json:"name"`
	Level       string `json:"level,omitempty"`
	NotesShared int    `json:"notesShared"`
	Reputation  int    `json:"reputation"`
}

// Contributors ranks users by notes shared.
func (s *LeaderboardService) Contributors(ctx context.Context, limit int) ([]ContributorEntry, error) {
	if limit < 1 || limit > 100 {
		limit = 10
	}

	key := fmt.Sprintf("leaderboard:contributors:%d", limit)
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, key).Result()
		if err == nil {
			var entries []ContributorEntry
			if json.Unmarshal([]byte(cached), &entries) == nil {
				return entries, nil
			}
		} else if err != redis.Nil {
			logger.Log.Warn("Leaderboard cache read failed", zap.Error(err))
		}
	}

	users, err := s.users.TopContributors(limit)
	if err != nil {
		return nil, err
	}

	entries := make([]ContributorEntry, 0, len(users))
	for i, u := range users {
		entry := ContributorEntry{
			Rank:        i + 1,
			UserID:      u.ID,
			Name:        u.Name,
			NotesShared: u.NotesCreated,
			Reputation:  u.Reputation,
		}
		if u.Level != nil {
			entry.Level = u.Level.Name
		}
		entries = append(entries, entry)
	}

	s.cacheEntries(ctx, key, entries)
	return entries, nil
}

type QuizChampionEntry struct {
	Rank         int    `json:"rank"`
	UserID       uint   `json:"userId"`
	Name         string `json:"name"`
	Level        string `json:"level,omitempty"`
	QuizCorrect  int    `json:"quizCorrect"`
	QuizzesTaken int    `json:"quizzesTaken"`
}

// QuizChampions ranks users by correct quiz answers.
func (s *LeaderboardService) QuizChampions(ctx context.Context, limit int) ([]QuizChampionEntry, error) {
	if limit < 1 || limit > 100 {
		limit = 10
	}

	key := fmt.Sprintf("leaderboard:quiz:%d", limit)
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, key).Result()
		if err == nil {
			var entries []QuizChampionEntry
			if json.Unmarshal([]byte(cached), &entries) == nil {
				return entries, nil
			}
		} else if err != redis.Nil {
			logger.Log.Warn("Leaderboard cache read failed", zap.Error(err))
		}
	}

	users, err := s.users.QuizChampions(limit)
	if err != nil {
		return nil, err
	}

	entries := make([]QuizChampionEntry, 0, len(users))
	for i, u := range users {
		entry := QuizChampionEntry{
			Rank:         i + 1,
			UserID:       u.ID,
			Name:         u.Name,
			QuizCorrect:  u.QuizCorrect,
			QuizzesTaken: u.QuizzesTaken,
		}
		if u.Level != nil {
			entry.Level = u.Level.Name
		}
		entries = append(entries, entry)
	}

	s.cacheEntries(ctx, key, entries)
	return entries, nil
}

func (s *LeaderboardService) cacheEntries(ctx context.Context, key string, entries interface{}) {
	if s.cache == nil {
		return
	}
	payload, err := json.Marshal(entries)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, payload, leaderboardCacheTTL).Err(); err != nil {
		logger.Log.Warn("Leaderboard cache write failed", zap.Error(err))
	}
}

// Mine returns the caller's own rank, always computed fresh.
func (s *LeaderboardService) Mine(userID uint) (*MyRank, error) {
	user, err := s.users.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}

	rank, err := s.users.Rank(user.ID, user.Reputation)
	if err != nil {
		return nil, err
	}
	return &MyRank{Rank: rank, Reputation: user.Reputation}, nil
}

// Invalidate drops cached leaderboard pages after a reputation-moving write.
func (s *LeaderboardService) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	iter := s.cache.Scan(ctx, 0, "leaderboard:*", 100).Iterator()
	for iter.Next(ctx) {
		if err := s.cache.Del(ctx, iter.Val()).Err(); err != nil {
			logger.Log.Warn("Leaderboard cache invalidation failed", zap.Error(err))
			return
		}
	}
}
