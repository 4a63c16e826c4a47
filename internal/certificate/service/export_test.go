package service

import (
	"context"
	"errors"

	"go.uber.org/mock/gomock"

	dErrors "github.com/lucky-arya/CSIxMKITOS/pkg/domain-errors"
)

func (s *ServiceSuite) TestExportJSON() {
	raw := []byte(`{"CERT-ABC123-0F1D2": {}}`)
	s.mockRefs.EXPECT().ExportJSON(gomock.Any()).Return(raw, nil)

	data, err := s.service.ExportJSON(context.Background())
	s.Require().NoError(err)
	s.Equal(raw, data)
}

func (s *ServiceSuite) TestExportJSONStoreFailure() {
	s.mockRefs.EXPECT().ExportJSON(gomock.Any()).Return(nil, errors.New("disk error"))

	_, err := s.service.ExportJSON(context.Background())
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
}

func (s *ServiceSuite) TestClearWipesStore() {
	s.mockRefs.EXPECT().ReplaceAll(gomock.Any(), gomock.Nil()).Return(nil)

	err := s.service.Clear(context.Background())
	s.Require().NoError(err)
}

func (s *ServiceSuite) TestClearStoreFailure() {
	s.mockRefs.EXPECT().ReplaceAll(gomock.Any(), gomock.Nil()).Return(errors.New("disk full"))

	err := s.service.Clear(context.Background())
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
}
