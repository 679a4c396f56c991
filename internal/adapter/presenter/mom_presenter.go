package presenter

import (
	"github.com/johnquangdev/mom-service/internal/adapter/dto/mom"
	"github.com/johnquangdev/mom-service/internal/domain/entities"
	momUsecase "github.com/johnquangdev/mom-service/internal/usecase/mom"
)

// ToMOMResponse converts a MeetingRecord entity to its DTO
func ToMOMResponse(r *entities.MeetingRecord) *mom.MOMResponse {
	if r == nil {
		return nil
	}

	attendees := make([]mom.AttendeeResponse, 0, len(r.Attendees))
	for _, a := range r.Attendees {
		attendees = append(attendees, mom.AttendeeResponse{Name: a.Name})
	}
	images := make([]mom.ImageResponse, 0, len(r.Images))
	for _, img := range r.Images {
		images = append(images, mom.ImageResponse{Data: img.Data, Width: img.Width, Height: img.Height})
	}
	points := append([]string{}, r.DiscussionPoints...)

	return &mom.MOMResponse{
		ID:                 r.ID.String(),
		TaskID:             r.TaskID.String(),
		CompanyName:        r.CompanyName,
		VisitDate:          r.VisitDate.Format("2006-01-02"),
		FormattedVisitDate: r.FormattedVisitDate(),
		Location:           r.Location,
		Attendees:          attendees,
		DiscussionPoints:   points,
		RawContent:         r.RawContent,
		ProcessedContent:   r.ProcessedContent,
		Images:             images,
		GeneratedDocPath:   r.GeneratedDocPath,
		GeneratedPdfPath:   r.GeneratedPdfPath,
		CreatedBy:          r.CreatedBy.String(),
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}
}

// ToMOMListResponse converts a list of records
func ToMOMListResponse(records []*entities.MeetingRecord) []*mom.MOMResponse {
	out := make([]*mom.MOMResponse, 0, len(records))
	for _, r := range records {
		out = append(out, ToMOMResponse(r))
	}
	return out
}

// ToTasksWithMOMsResponse converts task counts
func ToTasksWithMOMsResponse(counts []*entities.TaskRecordCount) []mom.TaskWithMOMsResponse {
	out := make([]mom.TaskWithMOMsResponse, 0, len(counts))
	for _, c := range counts {
		out = append(out, mom.TaskWithMOMsResponse{
			TaskID:    c.TaskID.String(),
			Title:     c.Title,
			MOMCount:  c.RecordCount,
			LastMOMAt: c.LastRecordAt,
		})
	}
	return out
}

// ToRegenerateResponse describes a regeneration outcome
func ToRegenerateResponse(doc *momUsecase.GeneratedDocument) *mom.RegenerateResponse {
	return &mom.RegenerateResponse{
		MomID:        doc.Record.ID.String(),
		DocPath:      doc.DocPath,
		PdfPath:      doc.PdfPath,
		DownloadName: doc.DownloadName,
		ArchiveURL:   doc.ArchiveURL,
	}
}
