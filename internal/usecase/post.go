package usecase

import (
	"context"

	"github.com/NefariousNGGA/backend/internal/domain"
)

const feedLimit = 20

type PostUsecase struct {
	repo PostRepository
}

func NewPostUsecase(repo PostRepository) *PostUsecase {
	return &PostUsecase{repo: repo}
}

func (uc *PostUsecase) Get(ctx context.Context, id int64) (domain.PostView, error) {
	post, err := uc.repo.Get(ctx, id)
	if err != nil {
		return domain.PostView{}, err
	}
	if post == nil {
		return domain.PostView{}, domain.NotFoundError{Resource: "post"}
	}
	return *post, nil
}

// List returns every post, newest first.
func (uc *PostUsecase) List(ctx context.Context) ([]domain.PostView, error) {
	return uc.repo.List(ctx, 0)
}

// Recent returns the posts that make up the syndication feed.
func (uc *PostUsecase) Recent(ctx context.Context) ([]domain.PostView, error) {
	return uc.repo.List(ctx, feedLimit)
}
