package usecase

import "context"

type FilesInfra interface {
	UploadFile(ctx context.Context, req *UploadFileReq) (string, error)
	UploadFiles(ctx context.Context, req *UploadFilesReq) (*UploadFilesRes, error)
	CleanupFiles(keys []string)
}

type MessageProducer interface {
	WriteRawMessage(ctx context.Context, req *WriteRawMessageReq) error
}
