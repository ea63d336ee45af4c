package grpc

// proto.go holds the hand-maintained service descriptor for
// aura.credit.v1.CreditService. Messages travel through the JSON codec.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/aurasystemsai/aura-core-monolith-sub005/internal/application/dto"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "aura.credit.v1.CreditService"

// CreditServiceServer is the server API for CreditService.
type CreditServiceServer interface {
	CalculateScore(context.Context, *CustomerRequest) (*dto.CreditScoreResponse, error)
	GetLatestScore(context.Context, *CustomerRequest) (*dto.CreditScoreResponse, error)
	ListScoreHistory(context.Context, *ListScoreHistoryRequest) (*dto.ScoreHistoryResponse, error)
	OriginateNetTerms(context.Context, *OriginateNetTermsRequest) (*dto.ObligationResponse, error)
	OriginateWorkingCapital(context.Context, *OriginateWorkingCapitalRequest) (*dto.ObligationResponse, error)
	OriginateRevenueBased(context.Context, *OriginateRevenueBasedRequest) (*dto.ObligationResponse, error)
	RecordPayment(context.Context, *RecordPaymentRequest) (*dto.RecordPaymentResponse, error)
	PaySupplier(context.Context, *ObligationRequest) (*dto.ObligationResponse, error)
	GetObligation(context.Context, *ObligationRequest) (*dto.ObligationResponse, error)
	ListObligations(context.Context, *CustomerRequest) (*dto.ObligationListResponse, error)
	GetDashboard(context.Context, *CustomerRequest) (*dto.DashboardResponse, error)
	ScanPaymentsDue(context.Context, *ScanPaymentsDueRequest) (*dto.ScanPaymentsDueResponse, error)
	mustEmbedUnimplementedCreditServiceServer()
}

// UnimplementedCreditServiceServer provides forward-compatible default implementations.
type UnimplementedCreditServiceServer struct{}

func (UnimplementedCreditServiceServer) CalculateScore(context.Context, *CustomerRequest) (*dto.CreditScoreResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method CalculateScore not implemented")
}
func (UnimplementedCreditServiceServer) GetLatestScore(context.Context, *CustomerRequest) (*dto.CreditScoreResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetLatestScore not implemented")
}
func (UnimplementedCreditServiceServer) ListScoreHistory(context.Context, *ListScoreHistoryRequest) (*dto.ScoreHistoryResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListScoreHistory not implemented")
}
func (UnimplementedCreditServiceServer) OriginateNetTerms(context.Context, *OriginateNetTermsRequest) (*dto.ObligationResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method OriginateNetTerms not implemented")
}
func (UnimplementedCreditServiceServer) OriginateWorkingCapital(context.Context, *OriginateWorkingCapitalRequest) (*dto.ObligationResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method OriginateWorkingCapital not implemented")
}
func (UnimplementedCreditServiceServer) OriginateRevenueBased(context.Context, *OriginateRevenueBasedRequest) (*dto.ObligationResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method OriginateRevenueBased not implemented")
}
func (UnimplementedCreditServiceServer) RecordPayment(context.Context, *RecordPaymentRequest) (*dto.RecordPaymentResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method RecordPayment not implemented")
}
func (UnimplementedCreditServiceServer) PaySupplier(context.Context, *ObligationRequest) (*dto.ObligationResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method PaySupplier not implemented")
}
func (UnimplementedCreditServiceServer) GetObligation(context.Context, *ObligationRequest) (*dto.ObligationResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetObligation not implemented")
}
func (UnimplementedCreditServiceServer) ListObligations(context.Context, *CustomerRequest) (*dto.ObligationListResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListObligations not implemented")
}
func (UnimplementedCreditServiceServer) GetDashboard(context.Context, *CustomerRequest) (*dto.DashboardResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetDashboard not implemented")
}
func (UnimplementedCreditServiceServer) ScanPaymentsDue(context.Context, *ScanPaymentsDueRequest) (*dto.ScanPaymentsDueResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ScanPaymentsDue not implemented")
}
func (UnimplementedCreditServiceServer) mustEmbedUnimplementedCreditServiceServer() {}

// RegisterCreditServiceServer registers srv with the gRPC server.
func RegisterCreditServiceServer(s grpclib.ServiceRegistrar, srv CreditServiceServer) {
	s.RegisterService(&_CreditService_serviceDesc, srv) //nolint:revive // gRPC handler registration
}

//nolint:revive // gRPC handler registration
var _CreditService_serviceDesc = grpclib.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CreditServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "CalculateScore", Handler: _CreditService_CalculateScore_Handler}, //nolint:revive // gRPC handler registration
		{MethodName: "GetLatestScore", Handler: _CreditService_GetLatestScore_Handler}, //nolint:revive // gRPC handler registration
		{MethodName: "ListScoreHistory", Handler: _CreditService_ListScoreHistory_Handler}, //nolint:revive // gRPC handler registration
		{MethodName: "OriginateNetTerms", Handler: _CreditService_OriginateNetTerms_Handler}, //nolint:revive // gRPC handler registration
		{MethodName: "OriginateWorkingCapital", Handler: _CreditService_OriginateWorkingCapital_Handler}, //nolint:revive // gRPC handler registration
		{MethodName: "OriginateRevenueBased", Handler: _CreditService_OriginateRevenueBased_Handler}, //nolint:revive // gRPC handler registration
		{MethodName: "RecordPayment", Handler: _CreditService_RecordPayment_Handler}, //nolint:revive // gRPC handler registration
		{MethodName: "PaySupplier", Handler: _CreditService_PaySupplier_Handler}, //nolint:revive // gRPC handler registration
		{MethodName: "GetObligation", Handler: _CreditService_GetObligation_Handler}, //nolint:revive // gRPC handler registration
		{MethodName: "ListObligations", Handler: _CreditService_ListObligations_Handler}, //nolint:revive // gRPC handler registration
		{MethodName: "GetDashboard", Handler: _CreditService_GetDashboard_Handler}, //nolint:revive // gRPC handler registration
		{MethodName: "ScanPaymentsDue", Handler: _CreditService_ScanPaymentsDue_Handler}, //nolint:revive // gRPC handler registration
	},
	Streams: []grpclib.StreamDesc{},
}

//nolint:revive,errcheck // gRPC handler registration
func _CreditService_CalculateScore_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(CustomerRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CreditServiceServer).CalculateScore(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/aura.credit.v1.CreditService/CalculateScore",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CreditServiceServer).CalculateScore(ctx, req.(*CustomerRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _CreditService_GetLatestScore_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(CustomerRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CreditServiceServer).GetLatestScore(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/aura.credit.v1.CreditService/GetLatestScore",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CreditServiceServer).GetLatestScore(ctx, req.(*CustomerRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _CreditService_ListScoreHistory_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(ListScoreHistoryRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CreditServiceServer).ListScoreHistory(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/aura.credit.v1.CreditService/ListScoreHistory",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CreditServiceServer).ListScoreHistory(ctx, req.(*ListScoreHistoryRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _CreditService_OriginateNetTerms_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(OriginateNetTermsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CreditServiceServer).OriginateNetTerms(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/aura.credit.v1.CreditService/OriginateNetTerms",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CreditServiceServer).OriginateNetTerms(ctx, req.(*OriginateNetTermsRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _CreditService_OriginateWorkingCapital_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(OriginateWorkingCapitalRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CreditServiceServer).OriginateWorkingCapital(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/aura.credit.v1.CreditService/OriginateWorkingCapital",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CreditServiceServer).OriginateWorkingCapital(ctx, req.(*OriginateWorkingCapitalRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _CreditService_OriginateRevenueBased_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(OriginateRevenueBasedRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CreditServiceServer).OriginateRevenueBased(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/aura.credit.v1.CreditService/OriginateRevenueBased",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CreditServiceServer).OriginateRevenueBased(ctx, req.(*OriginateRevenueBasedRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _CreditService_RecordPayment_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(RecordPaymentRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CreditServiceServer).RecordPayment(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/aura.credit.v1.CreditService/RecordPayment",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CreditServiceServer).RecordPayment(ctx, req.(*RecordPaymentRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _CreditService_PaySupplier_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(ObligationRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CreditServiceServer).PaySupplier(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/aura.credit.v1.CreditService/PaySupplier",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CreditServiceServer).PaySupplier(ctx, req.(*ObligationRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _CreditService_GetObligation_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(ObligationRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CreditServiceServer).GetObligation(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/aura.credit.v1.CreditService/GetObligation",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CreditServiceServer).GetObligation(ctx, req.(*ObligationRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _CreditService_ListObligations_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(CustomerRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CreditServiceServer).ListObligations(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/aura.credit.v1.CreditService/ListObligations",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CreditServiceServer).ListObligations(ctx, req.(*CustomerRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _CreditService_GetDashboard_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(CustomerRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CreditServiceServer).GetDashboard(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/aura.credit.v1.CreditService/GetDashboard",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CreditServiceServer).GetDashboard(ctx, req.(*CustomerRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _CreditService_ScanPaymentsDue_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(ScanPaymentsDueRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CreditServiceServer).ScanPaymentsDue(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/aura.credit.v1.CreditService/ScanPaymentsDue",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CreditServiceServer).ScanPaymentsDue(ctx, req.(*ScanPaymentsDueRequest))
	}
	return interceptor(ctx, in, info, handler)
}
