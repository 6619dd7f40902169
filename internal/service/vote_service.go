package service

import (
	"context"

	"studyhive_backend/internal/model"
	"studyhive_backend/internal/repository"
	"studyhive_backend/internal/util"
)

type CastVoteInput struct {
	VoteType string `json:"voteType" binding:"required,oneof=upvote downvote"`
}

type VoteService struct {
	votes       *repository.VoteRepository
	notes       *repository.CommunityNoteRepository
	comments    *repository.CommentRepository
	requests    *repository.RequestRepository
	leaderboard LeaderboardInvalidator
}

func NewVoteService(votes *repository.VoteRepository, notes *repository.CommunityNoteRepository, comments *repository.CommentRepository, requests *repository.RequestRepository, leaderboard LeaderboardInvalidator) *VoteService {
	return &VoteService{votes: votes, notes: notes, comments: comments, requests: requests, leaderboard: leaderboard}
}

// Cast toggles the user's vote on a target. Voting the same way twice
// withdraws the vote; voting the other way flips it.
func (s *VoteService) Cast(userID uint, targetType, targetID, voteType string) (*repository.VoteResult, error) {
	switch targetType {
	case model.VoteTargetNote:
		note, err := s.notes.FindByID(targetID)
		if err != nil {
			return nil, err
		}
		if note == nil {
			return nil, util.NotFound("Note not found")
		}
		if note.AuthorID == userID {
			return nil, util.BadRequest("You cannot vote on your own note")
		}
	case model.VoteTargetComment:
		comment, err := s.comments.FindByID(targetID)
		if err != nil {
			return nil, err
		}
		if comment == nil {
			return nil, util.NotFound("Comment not found")
		}
		if comment.AuthorID == userID {
			return nil, util.BadRequest("You cannot vote on your own comment")
		}
	case model.VoteTargetRequest:
		req, err := s.requests.FindByID(targetID)
		if err != nil {
			return nil, err
		}
		if req == nil {
			return nil, util.NotFound("Request not found")
		}
	default:
		return nil, util.BadRequest("Unknown vote target")
	}

	result, err := s.votes.Toggle(userID, targetType, targetID, voteType)
	if err != nil {
		return nil, err
	}
	s.invalidateLeaderboard()
	return result, nil
}

// Remove withdraws the user's vote outright, regardless of direction.
func (s *VoteService) Remove(userID uint, targetType, targetID string) (*repository.VoteResult, error) {
	switch targetType {
	case model.VoteTargetNote, model.VoteTargetComment, model.VoteTargetRequest:
	default:
		return nil, util.BadRequest("Unknown vote target")
	}
	result, err := s.votes.Remove(userID, targetType, targetID)
	if err != nil {
		return nil, err
	}
	s.invalidateLeaderboard()
	return result, nil
}

func (s *VoteService) invalidateLeaderboard() {
	if s.leaderboard != nil {
		s.leaderboard.Invalidate(context.Background())
	}
}

// Status reports the user's current vote on a target, if any.
func (s *VoteService) Status(userID uint, targetType, targetID string) (string, error) {
	vote, err := s.votes.Find(userID, targetType, targetID)
	if err != nil {
		return "", err
	}
	if vote == nil {
		return "", nil
	}
	return vote.VoteType, nil
}
