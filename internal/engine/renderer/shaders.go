package renderer

const pieceVertexShader = `
#version 410 core

layout (location = 0) in vec3 aPos;
layout (location = 1) in vec2 aTexCoord;
layout (location = 2) in vec3 aNormal;

uniform mat4 uProjection;
uniform mat4 uModelView;
uniform vec4 uPlanes[4];
uniform bool uClip;

out vec2 vTexCoord;
out vec3 vNormal;
out float gl_ClipDistance[4];

void main() {
	vec4 p = vec4(aPos, 1.0);
	for (int i = 0; i < 4; i++) {
		gl_ClipDistance[i] = uClip ? dot(uPlanes[i], p) : 1.0;
	}
	vTexCoord = aTexCoord;
	vNormal = mat3(uModelView) * aNormal;
	gl_Position = uProjection * uModelView * p;
}
`

const pieceFragmentShader = `
#version 410 core

in vec2 vTexCoord;
in vec3 vNormal;

uniform sampler2D uTexture;
uniform bool uLighting;
uniform bool uSolid;
uniform vec4 uColor;
uniform float uOpacity;
uniform float uBrightness;
uniform float uSaturation;
uniform vec3 uLightDir;
uniform float uAmbient;
uniform float uDiffuse;

out vec4 FragColor;

void main() {
	vec4 c = uSolid ? uColor : texture(uTexture, vTexCoord);
	vec3 rgb = c.rgb * uBrightness;
	float grey = dot(rgb, vec3(0.30, 0.59, 0.11));
	rgb = mix(vec3(grey), rgb, uSaturation);
	if (uLighting) {
		float d = max(dot(normalize(vNormal), uLightDir), 0.0);
		rgb *= min(uAmbient + uDiffuse * d, 1.0);
	}
	FragColor = vec4(rgb, c.a * uOpacity);
}
`
