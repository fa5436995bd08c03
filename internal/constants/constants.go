package constants

// CODATA 2018. Everything downstream of the config boundary is in Hartree
// atomic units (Hartree, Bohr, atomic time).
const Hartree float64 = 4.3597447222071e-18    // [J]
const Bohr float64 = 0.529177210903e-10        // [m]
const AtomicTime float64 = 2.4188843265857e-17 // [s]

const ElectronCharge = 1.602176634e-19                   // C
const KBolzmann float64 = 1.380649e-23                   // [J/K]
const KBolzmannEV float64 = 8.617333262e-5               // [eV/K]
const HBarEVs float64 = 6.582119569e-16                  // [eV s]
const FreeSpacePermittivityE0 float64 = 8.8541878128e-12 // [m^-3 kg^{-1} s^4 A^2]

const KBolzmannAU float64 = KBolzmann / Hartree // [Ha/K]
const Second float64 = 1. / AtomicTime          // atomic time units per second

const EVToHartree float64 = ElectronCharge / Hartree           // [Ha/eV]
const HartreePressure float64 = Hartree / (Bohr * Bohr * Bohr) // [Pa]
const GPaToAU float64 = 1.e9 / HartreePressure                 // [Ha bohr^-3 / GPa]
const BohrToCm float64 = Bohr * 1.e2                           // [cm]
const AngstromToBohr float64 = 1.e-10 / Bohr
