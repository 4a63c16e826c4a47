package service

import (
	"context"
	"errors"

	"go.uber.org/mock/gomock"

	dErrors "github.com/lucky-arya/CSIxMKITOS/pkg/domain-errors"
)

func (s *ServiceSuite) TestExportCSV() {
	document := []byte("name,email,eligibility\nAsha Rao,asha@example.com,eligible\n")
	s.mockRoster.EXPECT().ExportCSV(gomock.Any()).Return(document, nil)

	data, err := s.service.ExportCSV(context.Background())
	s.Require().NoError(err)
	s.Equal(document, data)
}

func (s *ServiceSuite) TestExportCSVStoreFailure() {
	s.mockRoster.EXPECT().ExportCSV(gomock.Any()).Return(nil, errors.New("read failed"))

	_, err := s.service.ExportCSV(context.Background())
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
}

func (s *ServiceSuite) TestClearResetsRoster() {
	s.mockRoster.EXPECT().ReplaceAll(gomock.Any(), gomock.Nil()).Return(nil)

	err := s.service.Clear(context.Background())
	s.Require().NoError(err)
}

func (s *ServiceSuite) TestClearStoreFailure() {
	s.mockRoster.EXPECT().ReplaceAll(gomock.Any(), gomock.Nil()).Return(errors.New("write failed"))

	err := s.service.Clear(context.Background())
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
}
