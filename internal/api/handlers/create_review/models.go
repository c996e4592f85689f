package create_review

import "github.com/m04kA/SMC-SalonBookingService/internal/service/reviews/models"

// CreateReviewRequest тело запроса на создание отзыва
type CreateReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// ToServiceRequest конвертирует handler-модель в service-модель
func (r *CreateReviewRequest) ToServiceRequest(userID int64) *models.CreateReviewRequest {
	return &models.CreateReviewRequest{
		UserID:  userID,
		Rating:  r.Rating,
		Comment: r.Comment,
	}
}
