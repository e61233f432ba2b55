package types

func StringPtr(s string) *string { return &s }

func BoolPtr(b bool) *bool { return &b }

func IntPtr(i int) *int { return &i }

func Uint32Ptr(u uint32) *uint32 { return &u }
