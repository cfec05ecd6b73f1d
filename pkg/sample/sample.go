package sample

// Sample represents one measurement instant of a dynamometer log.
// Voltages and currents are dq-frame peak values.
type Sample struct {
	Time           float64 // s
	SpeedRPM       float64 // Mechanical speed (rpm), sign gives rotation direction
	TorqueMeasured float64 // Shaft torque from the torque transducer (N·m)
	Ud             float64 // d-axis voltage (V peak)
	Uq             float64 // q-axis voltage (V peak)
	Id             float64 // d-axis current (A peak)
	Iq             float64 // q-axis current (A peak)
}

// DerivedSample is a Sample augmented with the electrical parameters computed
// from it. Derived fields are pure functions of the Sample and the motor
// parameters.
type DerivedSample struct {
	Sample

	OmegaE   float64 // Electrical angular frequency (rad/s), never negative
	PsiD     float64 // d-axis flux linkage (Wb)
	PsiQ     float64 // q-axis flux linkage (Wb)
	TorqueEM float64 // Electromagnetic torque from flux linkage (N·m)

	LdFlux    float64 // d-axis inductance from flux linkage (H)
	LqFlux    float64 // q-axis inductance from flux linkage (H)
	LdVoltage float64 // d-axis inductance from the voltage equations (H)
	LqVoltage float64 // q-axis inductance from the voltage equations (H)
	TorqueIdq float64 // Electromagnetic torque from the expanded idq equation (N·m)

	IdRMS float64
	IqRMS float64
	UdRMS float64
	UqRMS float64
}

// Currents returns the (Id, Iq) operating point of s.
func (s Sample) Currents() (id, iq float64) {
	return s.Id, s.Iq
}
