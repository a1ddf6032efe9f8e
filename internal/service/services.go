package service

import (
	"github.com/marc/albumshare/internal/config"
	"github.com/marc/albumshare/internal/mailer"
	"github.com/marc/albumshare/internal/media"
	"github.com/marc/albumshare/internal/repository"
)

type Services struct {
	Auth  *AuthService
	User  *UserService
	Album *AlbumService
	Photo *PhotoService
}

func NewServices(repos *repository.Repositories, cfg *config.Config, gateway media.Gateway, enricher media.Enricher, mail mailer.Mailer) *Services {
	return &Services{
		Auth:  NewAuthService(repos.User, cfg, mail),
		User:  NewUserService(repos.User, repos.Album, repos.Photo, gateway),
		Album: NewAlbumService(repos.Album, repos.Photo, gateway),
		Photo: NewPhotoService(repos.Photo, gateway, enricher),
	}
}
